package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talenthub/jobboard-api/internal/core/ports"
)

// ProfileHandler handles HTTP requests for job seeker profiles.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// GetOwn handles GET /v1/profiles/me.
//
// @Summary      Get own profile
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/profiles/me [get]
func (h *ProfileHandler) GetOwn(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	profile, err := h.service.GetOwnProfile(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// Get handles GET /v1/profiles/:id.
//
// @Summary      Get a profile
// @Description  Users may read only their own profile; admins may read any.
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Profile id"
// @Success      200  {object}  profileResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/profiles/{id} [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	profile, err := h.service.GetProfile(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// Create handles POST /v1/profiles.
//
// @Summary      Create own profile
// @Description  Job seeker only; each user may have at most one profile.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProfileRequest  true  "Profile details"
// @Success      201   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/profiles [post]
func (h *ProfileHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.service.CreateProfile(c.Request().Context(), p, ports.CreateProfileInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Skills:     req.Skills,
		Experience: req.Experience,
		Education:  req.Education,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProfileResponse(profile))
}

// Update handles PUT /v1/profiles/:id.
//
// @Summary      Update a profile
// @Description  Owner only; admins may update any profile.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Profile id"
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  profileResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/profiles/{id} [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.service.UpdateProfile(c.Request().Context(), p, c.Param("id"), toProfilePatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// Delete handles DELETE /v1/profiles/:id.
//
// @Summary      Delete a profile
// @Description  Owner only; admins may delete any profile.
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Profile id"
// @Success      200  {object}  deleteProfileResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/profiles/{id} [delete]
func (h *ProfileHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if err := h.service.DeleteProfile(c.Request().Context(), p, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteProfileResponse{ID: id, Message: "profile deleted"})
}
