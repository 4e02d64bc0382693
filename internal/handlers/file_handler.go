package handlers

import (
	"fmt"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-lens/internal/services"
)

// FileHandler serves resumes behind the tokens issued in match results.
type FileHandler struct {
	tokens  services.TokenStore
	storage services.StorageService
}

func NewFileHandler(tokens services.TokenStore, storage services.StorageService) *FileHandler {
	return &FileHandler{tokens: tokens, storage: storage}
}

// HandleView handles GET /files/view?token=
func (h *FileHandler) HandleView(c *fiber.Ctx) error {
	return h.serve(c, "inline")
}

// HandleDownload handles GET /files/download?token=
func (h *FileHandler) HandleDownload(c *fiber.Ctx) error {
	return h.serve(c, "attachment")
}

func (h *FileHandler) serve(c *fiber.Ctx, disposition string) error {
	path, err := h.tokens.Resolve(c.Query("token"))
	if err != nil {
		return err
	}

	data, err := h.storage.ReadAllowed(path)
	if err != nil {
		return err
	}

	name := filepath.Base(path)
	c.Set(fiber.HeaderContentType, services.ContentType(name))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`%s; filename="%s"`, disposition, name))
	return c.Send(data)
}
