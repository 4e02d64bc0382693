package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-lens/internal/models"
	"alfredoptarigan/resume-lens/internal/services"
)

type UploadHandler struct {
	matchService   services.MatchService
	storageService services.StorageService
	maxFileSize    int64
	log            *zap.Logger
}

func NewUploadHandler(
	matchService services.MatchService,
	storageService services.StorageService,
	maxFileSize int64,
	log *zap.Logger,
) *UploadHandler {
	return &UploadHandler{
		matchService:   matchService,
		storageService: storageService,
		maxFileSize:    maxFileSize,
		log:            log,
	}
}

// HandleMatchUpload handles POST /match/upload. The uploaded job description
// only lives for the duration of the request.
func (h *UploadHandler) HandleMatchUpload(c *fiber.Ctx) error {
	jdFile, err := c.FormFile("jd")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No job description uploaded. Please upload 'jd' as a PDF, DOC, DOCX or TXT file.",
		})
	}

	if jdFile.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Job description file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filePath, err := h.storageService.SaveFile(jdFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := h.storageService.DeleteFile(filePath); err != nil {
			h.log.Warn("⚠️  failed to clean up upload", zap.Error(err))
		}
	}()

	report, err := h.matchService.RunMatch(c.UserContext(), models.MatchRequest{
		JobTitle:   c.FormValue("job_title"),
		JDFilePath: filePath,
	})
	if err != nil {
		return err
	}

	return c.JSON(report)
}
