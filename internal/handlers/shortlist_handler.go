package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-lens/internal/models"
	"alfredoptarigan/resume-lens/internal/services"
)

type ShortlistHandler struct {
	shortlistService services.ShortlistService
}

func NewShortlistHandler(shortlistService services.ShortlistService) *ShortlistHandler {
	return &ShortlistHandler{shortlistService: shortlistService}
}

// HandleShortlist handles POST /shortlist for a report returned by /match.
// The status payload is returned on failure as well.
func (h *ShortlistHandler) HandleShortlist(c *fiber.Ctx) error {
	var req models.ShortlistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	status, err := h.shortlistService.Persist(req.Report, req.JobTitle)
	if err != nil {
		return c.Status(StatusFor(err)).JSON(status)
	}

	return c.Status(fiber.StatusCreated).JSON(status)
}
