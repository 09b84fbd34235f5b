package handler

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"folio/internal/auth"
	"folio/internal/service"
)

// Response is the uniform JSON envelope every endpoint renders.
type Response struct {
	Success    bool                `json:"success"`
	Data       interface{}         `json:"data,omitempty"`
	Count      *int                `json:"count,omitempty"`
	Pagination *service.Pagination `json:"pagination,omitempty"`
	Error      string              `json:"error,omitempty"`
}

func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Response{Success: true, Data: data})
}

func respondList(c echo.Context, status int, data interface{}, count int, pagination *service.Pagination) error {
	return c.JSON(status, Response{
		Success:    true,
		Data:       data,
		Count:      &count,
		Pagination: pagination,
	})
}

// currentClaims pulls the verified JWT claims set by the auth middleware.
func currentClaims(c echo.Context) (*auth.Claims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	return claims, nil
}

var errInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
