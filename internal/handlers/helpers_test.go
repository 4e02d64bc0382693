package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-lens/internal/models"
)

type fakeMatchService struct {
	report   *models.MatchReport
	err      error
	requests []models.MatchRequest
	similar  []models.SimilarResume
	jobs     []models.JobDescriptionResponse
}

func (f *fakeMatchService) RunMatch(_ context.Context, req models.MatchRequest) (*models.MatchReport, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func (f *fakeMatchService) SimilarResumes(_ context.Context, _ string, _ int) ([]models.SimilarResume, error) {
	return f.similar, f.err
}

func (f *fakeMatchService) ListOpenJobs() ([]models.JobDescriptionResponse, error) {
	return f.jobs, f.err
}

func (f *fakeMatchService) ListOpenApplicants() ([]models.ApplicantResponse, error) {
	return []models.ApplicantResponse{{ApplicantName: "Jane"}}, f.err
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	return resp, body
}

func sampleReport() *models.MatchReport {
	r := models.NewMatchReport()
	r.RequiredSkills = models.NewSkillSet("python", "aws")
	r.Buckets[models.TierTopMatch] = []models.ClassifiedCandidate{{
		ApplicantName: "Jane",
		ResumeName:    "jane.pdf",
		Percentage:    72.46,
		Score:         "72.46%",
		MatchedSkills: models.NewSkillSet("python"),
		MatchedCount:  1,
		TotalSkills:   2,
		Tier:          models.TierTopMatch,
		FilePath:      "/srv/private/jane.pdf",
	}}
	return r
}

func httptestGet(target string) *http.Request {
	return httptest.NewRequest("GET", target, nil)
}
