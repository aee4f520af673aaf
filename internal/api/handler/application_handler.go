package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talenthub/jobboard-api/internal/core/ports"
)

// ApplicationHandler handles HTTP requests for application operations.
type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// List handles GET /v1/applications.
//
// @Summary      List applications
// @Description  Job seekers see their own, employers see applications against their jobs, admins see all.
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listApplicationsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/applications [get]
func (h *ApplicationHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	views, err := h.service.ListApplications(c.Request().Context(), p)
	if err != nil {
		return err
	}

	data := make([]applicationResponse, 0, len(views))
	for _, view := range views {
		data = append(data, toApplicationViewResponse(view))
	}
	return c.JSON(http.StatusOK, listApplicationsResponse{Data: data})
}

// Get handles GET /v1/applications/:id.
//
// @Summary      Get an application
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application id"
// @Success      200  {object}  applicationResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/applications/{id} [get]
func (h *ApplicationHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	view, err := h.service.GetApplication(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toApplicationViewResponse(view))
}

// Create handles POST /v1/applications — multipart with a resume file.
//
// @Summary      Submit an application
// @Description  Job seeker only, at most once per job. Multipart form with fields job_id, cover_letter, and file resume.
// @Tags         applications
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        job_id        formData  string  true   "Job id"
// @Param        cover_letter  formData  string  false  "Cover letter"
// @Param        resume        formData  file    true   "Resume (pdf, doc, docx)"
// @Success      201  {object}  applicationResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/applications [post]
func (h *ApplicationHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	jobID := c.FormValue("job_id")
	if jobID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing required field: job_id")
	}

	upload, file, err := formResume(c)
	if err != nil {
		return err
	}
	defer file.Close()

	app, err := h.service.CreateApplication(c.Request().Context(), p, ports.CreateApplicationInput{
		JobID:       jobID,
		CoverLetter: c.FormValue("cover_letter"),
		Resume:      upload,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toApplicationResponse(app))
}

// UpdateStatus handles PUT /v1/applications/:id/status.
//
// @Summary      Transition an application's review status
// @Description  Only the employer owning the referenced job. pending→reviewed|accepted|rejected, reviewed→accepted|rejected; accepted and rejected are terminal.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                          true  "Application id"
// @Param        body  body      updateApplicationStatusRequest  true  "Target status"
// @Success      200   {object}  applicationResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/applications/{id}/status [put]
func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateApplicationStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	app, err := h.service.UpdateStatus(c.Request().Context(), p, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toApplicationResponse(app))
}

// UpdateResume handles PUT /v1/applications/:id/resume — multipart.
//
// @Summary      Replace the resume on an application
// @Description  Applicant only. Status and cover letter are untouched.
// @Tags         applications
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "Application id"
// @Param        resume  formData  file    true  "Replacement resume"
// @Success      200     {object}  applicationResponse
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /v1/applications/{id}/resume [put]
func (h *ApplicationHandler) UpdateResume(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	upload, file, err := formResume(c)
	if err != nil {
		return err
	}
	defer file.Close()

	app, err := h.service.UpdateResume(c.Request().Context(), p, c.Param("id"), upload)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toApplicationResponse(app))
}

// Delete handles DELETE /v1/applications/:id.
//
// @Summary      Delete an application
// @Description  Allowed for the applicant, the employer owning the referenced job, or an admin.
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application id"
// @Success      200  {object}  deleteApplicationResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/applications/{id} [delete]
func (h *ApplicationHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if err := h.service.DeleteApplication(c.Request().Context(), p, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteApplicationResponse{ID: id, Message: "application deleted"})
}

// DownloadResume handles GET /v1/resumes/:file_id — streams the stored file.
//
// @Summary      Download a resume
// @Description  Allowed for the applicant, the employer owning the referenced job, or an admin.
// @Tags         applications
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Param        file_id  path  string  true  "Resume file id"
// @Success      200
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/resumes/{file_id} [get]
func (h *ApplicationHandler) DownloadResume(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	// Buffered so the content type header can be set from the stored ref
	// after access is validated. Resumes are small documents.
	var buf bytes.Buffer
	ref, err := h.service.OpenResume(c.Request().Context(), p, c.Param("file_id"), &buf)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+ref.FileName+`"`)
	return c.Blob(http.StatusOK, ref.ContentType, buf.Bytes())
}

// formResume extracts the resume file from a multipart form. The caller owns
// closing the returned file.
func formResume(c echo.Context) (ports.ResumeUpload, multipart.File, error) {
	fh, err := c.FormFile("resume")
	if err != nil {
		return ports.ResumeUpload{}, nil, echo.NewHTTPError(http.StatusBadRequest, "missing required field: resume")
	}

	file, err := fh.Open()
	if err != nil {
		return ports.ResumeUpload{}, nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable resume file")
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return ports.ResumeUpload{
		FileName:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Content:     file,
	}, file, nil
}
