package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"folio/internal/model"
	"folio/internal/service"
)

// ProfileHandler handles CV/profile endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// PersonalInfoRequest patches the CV header.
type PersonalInfoRequest struct {
	FirstName    *string `json:"firstName" validate:"omitempty,min=1,max=50"`
	LastName     *string `json:"lastName" validate:"omitempty,min=1,max=50"`
	Title        *string `json:"title" validate:"omitempty,min=1,max=100"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Phone        *string `json:"phone" validate:"omitempty,max=20"`
	Location     *string `json:"location" validate:"omitempty,max=100"`
	Website      *string `json:"website" validate:"omitempty,url"`
	Linkedin     *string `json:"linkedin" validate:"omitempty,url"`
	Github       *string `json:"github" validate:"omitempty,url"`
	ProfileImage *string `json:"profileImage" validate:"omitempty,max=255"`
	Bio          *string `json:"bio" validate:"omitempty,min=1,max=500"`
}

// CertificationRequest is one certification entry.
type CertificationRequest struct {
	Name          string  `json:"name" validate:"required,max=100"`
	Issuer        string  `json:"issuer" validate:"required,max=100"`
	IssueDate     string  `json:"issueDate" validate:"required,datetime=2006-01-02"`
	ExpiryDate    *string `json:"expiryDate" validate:"omitempty,datetime=2006-01-02"`
	CredentialID  string  `json:"credentialId" validate:"omitempty,max=50"`
	CredentialURL string  `json:"credentialUrl" validate:"omitempty,url"`
}

// UpdateProfileRequest carries a partial profile update.
type UpdateProfileRequest struct {
	PersonalInfo   *PersonalInfoRequest    `json:"personalInfo"`
	Skills         *model.SkillSet         `json:"skills"`
	Certifications *[]CertificationRequest `json:"certifications" validate:"omitempty,dive"`
}

// SettingsRequest sets the profile visibility flags.
type SettingsRequest struct {
	IsPublic     bool `json:"isPublic"`
	ShowEmail    bool `json:"showEmail"`
	ShowPhone    bool `json:"showPhone"`
	AllowContact bool `json:"allowContact"`
}

// ExperienceRequest is one experience entry.
type ExperienceRequest struct {
	Company      string   `json:"company" validate:"required,max=100"`
	Position     string   `json:"position" validate:"required,max=100"`
	Location     string   `json:"location" validate:"omitempty,max=100"`
	StartDate    string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate      *string  `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Description  string   `json:"description" validate:"required,min=10,max=1000"`
	Technologies []string `json:"technologies"`
	IsCurrent    bool     `json:"isCurrent"`
}

// EducationRequest is one education entry.
type EducationRequest struct {
	Institution string   `json:"institution" validate:"required,max=100"`
	Degree      string   `json:"degree" validate:"required,max=100"`
	Field       string   `json:"field" validate:"required,max=100"`
	StartDate   string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     *string  `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	GPA         *float64 `json:"gpa" validate:"omitempty,gte=0,lte=4"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	IsCurrent   bool     `json:"isCurrent"`
}

// ProjectRequest is one portfolio project entry.
type ProjectRequest struct {
	Title        string   `json:"title" validate:"required,max=100"`
	Description  string   `json:"description" validate:"required,min=10,max=500"`
	Technologies []string `json:"technologies"`
	GithubURL    string   `json:"githubUrl" validate:"omitempty,url"`
	LiveURL      string   `json:"liveUrl" validate:"omitempty,url"`
	Image        string   `json:"image" validate:"omitempty,max=255"`
	Featured     bool     `json:"featured"`
	StartDate    *string  `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate      *string  `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

// Get godoc
// @Summary Get the authenticated user's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	profile, err := h.profileService.GetProfile(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, profile)
}

// Update godoc
// @Summary Patch the authenticated user's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Fields to change"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.PersonalInfo != nil {
		if err := c.Validate(req.PersonalInfo); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	in := service.UpdateProfileInput{Skills: req.Skills}
	if req.PersonalInfo != nil {
		in.PersonalInfo = &service.PersonalInfoInput{
			FirstName:    req.PersonalInfo.FirstName,
			LastName:     req.PersonalInfo.LastName,
			Title:        req.PersonalInfo.Title,
			Email:        req.PersonalInfo.Email,
			Phone:        req.PersonalInfo.Phone,
			Location:     req.PersonalInfo.Location,
			Website:      req.PersonalInfo.Website,
			Linkedin:     req.PersonalInfo.Linkedin,
			Github:       req.PersonalInfo.Github,
			ProfileImage: req.PersonalInfo.ProfileImage,
			Bio:          req.PersonalInfo.Bio,
		}
	}
	if req.Certifications != nil {
		certs := make([]service.CertificationInput, 0, len(*req.Certifications))
		for _, cr := range *req.Certifications {
			issueDate, err := parseDate(cr.IssueDate)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, errInvalidDate.Error())
			}
			expiry, err := parseDatePtr(cr.ExpiryDate)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, errInvalidDate.Error())
			}
			certs = append(certs, service.CertificationInput{
				Name:          cr.Name,
				Issuer:        cr.Issuer,
				IssueDate:     issueDate,
				ExpiryDate:    expiry,
				CredentialID:  cr.CredentialID,
				CredentialURL: cr.CredentialURL,
			})
		}
		in.Certifications = &certs
	}

	profile, err := h.profileService.UpdateProfile(c.Request().Context(), claims.UserID, in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, profile)
}

// UpdateSettings godoc
// @Summary Set profile visibility settings
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SettingsRequest true "Visibility flags"
// @Success 200 {object} Response
// @Router /profile/settings [put]
func (h *ProfileHandler) UpdateSettings(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req SettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	profile, err := h.profileService.UpdateSettings(c.Request().Context(), claims.UserID, model.Settings{
		IsPublic:     req.IsPublic,
		ShowEmail:    req.ShowEmail,
		ShowPhone:    req.ShowPhone,
		AllowContact: req.AllowContact,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, profile)
}

// GetPublic godoc
// @Summary Get the public view of a profile
// @Tags profile
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /profile/public/{userId} [get]
func (h *ProfileHandler) GetPublic(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user ID")
	}

	profile, err := h.profileService.GetPublicProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, profile)
}

// AddExperience godoc
// @Summary Add an experience entry
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ExperienceRequest true "Experience entry"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Router /profile/experience [post]
func (h *ProfileHandler) AddExperience(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	in, err := h.bindExperience(c)
	if err != nil {
		return err
	}

	profile, err := h.profileService.AddExperience(c.Request().Context(), claims.UserID, *in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, profile)
}

// UpdateExperience godoc
// @Summary Update an experience entry
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param request body ExperienceRequest true "Experience entry"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /profile/experience/{id} [put]
func (h *ProfileHandler) UpdateExperience(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid entry ID")
	}

	in, err := h.bindExperience(c)
	if err != nil {
		return err
	}

	profile, err := h.profileService.UpdateExperience(c.Request().Context(), claims.UserID, entryID, *in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, profile)
}

// DeleteExperience godoc
// @Summary Delete an experience entry
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /profile/experience/{id} [delete]
func (h *ProfileHandler) DeleteExperience(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid entry ID")
	}

	profile, err := h.profileService.DeleteExperience(c.Request().Context(), claims.UserID, entryID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, profile)
}

// AddEducation godoc
// @Summary Add an education entry
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EducationRequest true "Education entry"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Router /profile/education [post]
func (h *ProfileHandler) AddEducation(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	in, err := h.bindEducation(c)
	if err != nil {
		return err
	}

	profile, err := h.profileService.AddEducation(c.Request().Context(), claims.UserID, *in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, profile)
}

// UpdateEducation godoc
// @Summary Update an education entry
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param request body EducationRequest true "Education entry"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /profile/education/{id} [put]
func (h *ProfileHandler) UpdateEducation(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid entry ID")
	}

	in, err := h.bindEducation(c)
	if err != nil {
		return err
	}

	profile, err := h.profileService.UpdateEducation(c.Request().Context(), claims.UserID, entryID, *in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, profile)
}

// DeleteEducation godoc
// @Summary Delete an education entry
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /profile/education/{id} [delete]
func (h *ProfileHandler) DeleteEducation(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid entry ID")
	}

	profile, err := h.profileService.DeleteEducation(c.Request().Context(), claims.UserID, entryID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, profile)
}

// AddProject godoc
// @Summary Add a project entry
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProjectRequest true "Project entry"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Router /profile/projects [post]
func (h *ProfileHandler) AddProject(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	in, err := h.bindProject(c)
	if err != nil {
		return err
	}

	profile, err := h.profileService.AddProject(c.Request().Context(), claims.UserID, *in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, profile)
}

// UpdateProject godoc
// @Summary Update a project entry
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param request body ProjectRequest true "Project entry"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /profile/projects/{id} [put]
func (h *ProfileHandler) UpdateProject(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid entry ID")
	}

	in, err := h.bindProject(c)
	if err != nil {
		return err
	}

	profile, err := h.profileService.UpdateProject(c.Request().Context(), claims.UserID, entryID, *in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, profile)
}

// DeleteProject godoc
// @Summary Delete a project entry
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /profile/projects/{id} [delete]
func (h *ProfileHandler) DeleteProject(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid entry ID")
	}

	profile, err := h.profileService.DeleteProject(c.Request().Context(), claims.UserID, entryID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, profile)
}

func (h *ProfileHandler) bindExperience(c echo.Context) (*service.ExperienceInput, error) {
	var req ExperienceRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errInvalidDate.Error())
	}
	endDate, err := parseDatePtr(req.EndDate)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errInvalidDate.Error())
	}

	return &service.ExperienceInput{
		Company:      req.Company,
		Position:     req.Position,
		Location:     req.Location,
		StartDate:    startDate,
		EndDate:      endDate,
		Description:  req.Description,
		Technologies: req.Technologies,
		IsCurrent:    req.IsCurrent,
	}, nil
}

func (h *ProfileHandler) bindEducation(c echo.Context) (*service.EducationInput, error) {
	var req EducationRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errInvalidDate.Error())
	}
	endDate, err := parseDatePtr(req.EndDate)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errInvalidDate.Error())
	}

	return &service.EducationInput{
		Institution: req.Institution,
		Degree:      req.Degree,
		Field:       req.Field,
		StartDate:   startDate,
		EndDate:     endDate,
		GPA:         req.GPA,
		Description: req.Description,
		IsCurrent:   req.IsCurrent,
	}, nil
}

func (h *ProfileHandler) bindProject(c echo.Context) (*service.ProjectInput, error) {
	var req ProjectRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	startDate, err := parseDatePtr(req.StartDate)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errInvalidDate.Error())
	}
	endDate, err := parseDatePtr(req.EndDate)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errInvalidDate.Error())
	}

	return &service.ProjectInput{
		Title:        req.Title,
		Description:  req.Description,
		Technologies: req.Technologies,
		GithubURL:    req.GithubURL,
		LiveURL:      req.LiveURL,
		Image:        req.Image,
		Featured:     req.Featured,
		StartDate:    startDate,
		EndDate:      endDate,
	}, nil
}

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
