package router

import (
	"errors"
	"net/http"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"folio/internal/auth"
	"folio/internal/config"
	apperrors "folio/internal/errors"
	"folio/internal/handler"
	"folio/internal/model"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	blogHandler *handler.BlogHandler,
	profileHandler *handler.ProfileHandler,
	contactHandler *handler.ContactHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))

	e.Validator = NewValidator()
	e.HTTPErrorHandler = httpErrorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	api.GET("/blog", blogHandler.List)
	api.GET("/blog/tag/:tag", blogHandler.ListByTag)
	api.GET("/blog/category/:category", blogHandler.ListByCategory)
	api.GET("/blog/:slug", blogHandler.GetBySlug)

	api.GET("/profile/public/:userId", profileHandler.GetPublic)

	api.POST("/contact", contactHandler.Submit)

	// Secured routes (require a valid, non-revoked JWT)
	secured := api.Group("",
		echojwt.WithConfig(echojwt.Config{
			SigningKey: []byte(cfg.JWTSecret),
			NewClaimsFunc: func(c echo.Context) jwt.Claims {
				return new(auth.Claims)
			},
		}),
		rejectRevokedTokens(tokenStore),
	)

	secured.GET("/auth/me", authHandler.Me)
	secured.PUT("/auth/updatedetails", authHandler.UpdateDetails)
	secured.PUT("/auth/updatepassword", authHandler.UpdatePassword)
	secured.POST("/auth/logout", authHandler.Logout)
	secured.DELETE("/auth/deleteaccount", authHandler.DeleteAccount)

	secured.GET("/profile", profileHandler.Get)
	secured.PUT("/profile", profileHandler.Update)
	secured.PUT("/profile/settings", profileHandler.UpdateSettings)

	secured.POST("/profile/experience", profileHandler.AddExperience)
	secured.PUT("/profile/experience/:id", profileHandler.UpdateExperience)
	secured.DELETE("/profile/experience/:id", profileHandler.DeleteExperience)

	secured.POST("/profile/education", profileHandler.AddEducation)
	secured.PUT("/profile/education/:id", profileHandler.UpdateEducation)
	secured.DELETE("/profile/education/:id", profileHandler.DeleteEducation)

	secured.POST("/profile/projects", profileHandler.AddProject)
	secured.PUT("/profile/projects/:id", profileHandler.UpdateProject)
	secured.DELETE("/profile/projects/:id", profileHandler.DeleteProject)

	// Owner-or-admin enforcement happens in the blog service.
	secured.PUT("/blog/:id", blogHandler.Update)
	secured.DELETE("/blog/:id", blogHandler.Delete)

	// Admin-only routes
	admin := secured.Group("", requireRole(model.RoleAdmin))
	admin.POST("/blog", blogHandler.Create)
	admin.GET("/blog/admin", blogHandler.ListAll)
	admin.GET("/contact", contactHandler.List)
}

// rejectRevokedTokens runs after the JWT middleware and drops tokens
// whose JTI was blacklisted by logout.
func rejectRevokedTokens(store auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			if claims.ID != "" {
				revoked, _ := store.IsTokenBlacklisted(c.Request().Context(), claims.ID)
				if revoked {
					return apperrors.ErrTokenInvalid
				}
			}
			return next(c)
		}
	}
}

// requireRole gates a route group on the token's role claim.
func requireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			if !auth.HasRole(claims.Role, roles...) {
				return apperrors.ErrForbidden
			}
			return next(c)
		}
	}
}

// httpErrorHandler renders every error as the uniform envelope.
// Unmapped errors surface as a generic 500 and are logged with detail.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var status int
	var msg string

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(status)
		}
	} else {
		httpErr := apperrors.MapErrorToHTTP(err)
		status = httpErr.StatusCode
		msg = httpErr.Message
		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, handler.Response{Success: false, Error: msg})
}

var alphaSpaceRe = regexp.MustCompile(`^[a-zA-Z\s]+$`)

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator with the custom rules the
// API needs.
func NewValidator() *CustomValidator {
	v := validator.New()
	// contact form names: letters and spaces only
	_ = v.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
		return alphaSpaceRe.MatchString(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
