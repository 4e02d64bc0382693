package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-lens/internal/services"
)

type JobHandler struct {
	matchService services.MatchService
}

func NewJobHandler(matchService services.MatchService) *JobHandler {
	return &JobHandler{matchService: matchService}
}

// HandleListJobs handles GET /jobs
func (h *JobHandler) HandleListJobs(c *fiber.Ctx) error {
	jobs, err := h.matchService.ListOpenJobs()
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"job_descriptions": jobs,
	})
}

// HandleListApplicants handles GET /applicants
func (h *JobHandler) HandleListApplicants(c *fiber.Ctx) error {
	applicants, err := h.matchService.ListOpenApplicants()
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"job_applicants": applicants,
	})
}
