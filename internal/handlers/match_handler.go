package handlers

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-lens/internal/export"
	"alfredoptarigan/resume-lens/internal/models"
	"alfredoptarigan/resume-lens/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

func (h *MatchHandler) parseRequest(c *fiber.Ctx) (models.MatchRequest, error) {
	var req models.MatchRequest
	if err := c.BodyParser(&req); err != nil {
		return req, fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}

	if req.JobTitle == "" && strings.TrimSpace(req.JDText) == "" {
		return req, fiber.NewError(fiber.StatusBadRequest, "job_title or jd_text is required")
	}
	return req, nil
}

// HandleMatch handles POST /match
func (h *MatchHandler) HandleMatch(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return err
	}

	report, err := h.matchService.RunMatch(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.JSON(report)
}

// HandleExport handles POST /match/export
func (h *MatchHandler) HandleExport(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return err
	}

	report, err := h.matchService.RunMatch(c.UserContext(), req)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteReport(&buf, report); err != nil {
		return err
	}

	name := "match_report.xlsx"
	if req.JobTitle != "" {
		name = fmt.Sprintf("match_report_%s.xlsx", strings.ReplaceAll(strings.ToLower(req.JobTitle), " ", "_"))
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(buf.Bytes())
}

// HandleSimilar handles POST /match/similar
func (h *MatchHandler) HandleSimilar(c *fiber.Ctx) error {
	var req models.SimilarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	results, err := h.matchService.SimilarResumes(c.UserContext(), req.JDText, req.Limit)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"results": results,
	})
}
