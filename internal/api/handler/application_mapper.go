package handler

import (
	"github.com/talenthub/jobboard-api/internal/core/domain"
	"github.com/talenthub/jobboard-api/internal/core/ports"
)

func toApplicationResponse(app *domain.Application) applicationResponse {
	return applicationResponse{
		ID:          app.ID,
		JobID:       app.JobID,
		ApplicantID: app.ApplicantID,
		Status:      string(app.Status),
		CoverLetter: app.CoverLetter,
		Resume: resumeResponse{
			FileID:      app.Resume.FileID,
			FileName:    app.Resume.FileName,
			ContentType: app.Resume.ContentType,
			Size:        app.Resume.Size,
			URL:         app.Resume.URL,
		},
		CreatedAt: app.CreatedAt,
		UpdatedAt: app.UpdatedAt,
	}
}

func toApplicationViewResponse(view *ports.ApplicationView) applicationResponse {
	resp := toApplicationResponse(view.Application)
	if view.Job != nil {
		resp.Job = &jobSummaryResponse{
			ID:          view.Job.ID,
			Title:       view.Job.Title,
			CompanyName: view.Job.CompanyName,
			Location:    view.Job.Location,
			ExpiredAt:   view.Job.ExpiredAt,
		}
	}
	return resp
}
