package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talenthub/jobboard-api/internal/core/ports"
)

// JobHandler handles HTTP requests for job posting operations.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// List handles GET /v1/jobs.
//
// @Summary      List job postings
// @Description  Employers see only their own postings; job seekers and admins see the full catalog.
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  listJobsResponse
// @Failure      401    {object}  errorResponse
// @Router       /v1/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	page, _ := intQuery(c, "page")
	limit, _ := intQuery(c, "limit")

	result, err := h.service.ListJobs(c.Request().Context(), p, ports.ListJobsInput{Page: page, Limit: limit})
	if err != nil {
		return err
	}

	data := make([]jobResponse, 0, len(result.Items))
	for _, job := range result.Items {
		data = append(data, toJobResponse(job))
	}

	return c.JSON(http.StatusOK, listJobsResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /v1/jobs/:id.
//
// @Summary      Get a job posting
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  jobResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	job, err := h.service.GetJob(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobResponse(job))
}

// Create handles POST /v1/jobs.
//
// @Summary      Create a job posting
// @Description  Employer only. Duplicate submissions carrying the same request id return the original posting.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJobRequest  true  "Job details"
// @Success      201   {object}  jobResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.CreateJob(c.Request().Context(), p, ports.CreateJobInput{
		Title:           req.Title,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Salary:          req.Salary,
		Location:        req.Location,
		JobType:         req.JobType,
		ExperienceLevel: req.ExperienceLevel,
		CompanyName:     req.CompanyName,
		Industry:        req.Industry,
		ExpiredAt:       req.ExpiredAt,
		RequestID:       req.RequestID,
	})
	if err != nil {
		return err
	}

	// Idempotent replays return the existing posting with the same 201 the
	// original request got.
	return c.JSON(http.StatusCreated, toJobResponse(result.Job))
}

// Update handles PUT /v1/jobs/:id.
//
// @Summary      Update a job posting
// @Description  Owning employer only. Owner and request id cannot be changed.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Job id"
// @Param        body  body      updateJobRequest  true  "Fields to change"
// @Success      200   {object}  jobResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/jobs/{id} [put]
func (h *JobHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	job, err := h.service.UpdateJob(c.Request().Context(), p, c.Param("id"), toJobPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobResponse(job))
}

// Delete handles DELETE /v1/jobs/:id.
//
// @Summary      Delete a job posting
// @Description  Owning employer only. Cascades to every application referencing the job.
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  deleteJobResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if err := h.service.DeleteJob(c.Request().Context(), p, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteJobResponse{ID: id, Message: "job deleted"})
}
