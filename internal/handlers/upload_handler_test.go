package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-lens/internal/services"
)

func newUploadApp(t *testing.T, svc *fakeMatchService, maxSize int64) (*fiber.App, string) {
	t.Helper()
	root := t.TempDir()
	uploads := filepath.Join(root, "uploads")
	storage := services.NewStorageService(uploads, filepath.Join(root, "private"), filepath.Join(root, "public"), nil, zap.NewNop())
	if err := storage.EnsureDirs(); err != nil {
		t.Fatal(err)
	}

	app := newTestApp()
	app.Post("/match/upload", NewUploadHandler(svc, storage, maxSize, zap.NewNop()).HandleMatchUpload)
	return app, uploads
}

func uploadBody(t *testing.T, filename, content, jobTitle string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if filename != "" {
		part, err := w.CreateFormFile("jd", filename)
		if err != nil {
			t.Fatal(err)
		}
		part.Write([]byte(content))
	}
	if jobTitle != "" {
		w.WriteField("job_title", jobTitle)
	}
	w.Close()
	return body, w.FormDataContentType()
}

func TestHandleMatchUpload(t *testing.T) {
	svc := &fakeMatchService{report: sampleReport()}
	app, uploads := newUploadApp(t, svc, 1<<20)

	body, contentType := uploadBody(t, "role.txt", "Experience: 3-5 years. Skills: Go", "Backend Engineer")
	req := httptest.NewRequest("POST", "/match/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, respBody := do(t, app, req)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, respBody)
	}

	got := svc.requests[0]
	if got.JobTitle != "Backend Engineer" || filepath.Dir(got.JDFilePath) != uploads || got.JDText != "" {
		t.Errorf("request = %+v", got)
	}

	entries, _ := os.ReadDir(uploads)
	if len(entries) != 0 {
		t.Errorf("upload dir holds %d files after the request", len(entries))
	}
}

func TestHandleMatchUpload_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		maxSize  int64
		want     int
	}{
		{"no file", "", "", 1 << 20, fiber.StatusBadRequest},
		{"too large", "role.pdf", "0123456789", 5, fiber.StatusBadRequest},
		{"bad extension", "role.exe", "x", 1 << 20, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeMatchService{report: sampleReport()}
			app, _ := newUploadApp(t, svc, tt.maxSize)

			body, contentType := uploadBody(t, tt.filename, tt.content, "")
			req := httptest.NewRequest("POST", "/match/upload", body)
			req.Header.Set("Content-Type", contentType)

			resp, _ := do(t, app, req)
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
			if len(svc.requests) != 0 {
				t.Error("match ran for a rejected upload")
			}
		})
	}
}
