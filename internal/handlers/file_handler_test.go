package handlers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-lens/internal/services"
)

func newFileApp(t *testing.T) (*fiber.App, services.TokenStore, string) {
	t.Helper()
	root := t.TempDir()
	private := filepath.Join(root, "private")
	public := filepath.Join(root, "public")
	storage := services.NewStorageService(filepath.Join(root, "uploads"), private, public, nil, zap.NewNop())
	if err := storage.EnsureDirs(); err != nil {
		t.Fatal(err)
	}

	tokens := services.NewTokenStore(10, time.Minute)
	h := NewFileHandler(tokens, storage)

	app := newTestApp()
	app.Get("/files/view", h.HandleView)
	app.Get("/files/download", h.HandleDownload)
	return app, tokens, private
}

func TestFileHandler_ViewAndDownload(t *testing.T) {
	app, tokens, private := newFileApp(t)

	path := filepath.Join(private, "jane.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 fake"), 0o644); err != nil {
		t.Fatal(err)
	}
	token, err := tokens.Issue(path)
	if err != nil {
		t.Fatal(err)
	}

	resp, body := do(t, app, httptestGet("/files/view?token="+token))
	if resp.StatusCode != fiber.StatusOK || string(body) != "%PDF-1.4 fake" {
		t.Fatalf("view status = %d body = %q", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.HasPrefix(cd, "inline") {
		t.Errorf("view Content-Disposition = %q", cd)
	}

	resp, _ = do(t, app, httptestGet("/files/download?token="+token))
	if cd := resp.Header.Get("Content-Disposition"); cd != `attachment; filename="jane.pdf"` {
		t.Errorf("download Content-Disposition = %q", cd)
	}
}

func TestFileHandler_Denied(t *testing.T) {
	app, tokens, _ := newFileApp(t)

	outside := filepath.Join(t.TempDir(), "secret.txt")
	if err := os.WriteFile(outside, []byte("secret"), 0o644); err != nil {
		t.Fatal(err)
	}
	escaped, _ := tokens.Issue(outside)

	tests := []struct {
		name string
		url  string
		want int
	}{
		{"missing token", "/files/view", fiber.StatusForbidden},
		{"unknown token", "/files/view?token=nope", fiber.StatusForbidden},
		{"outside whitelist", "/files/download?token=" + escaped, fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, app, httptestGet(tt.url))
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
			if strings.Contains(string(body), "secret") || strings.Contains(string(body), outside) {
				t.Errorf("body leaks path: %s", body)
			}
		})
	}
}
