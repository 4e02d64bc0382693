package export

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/xuri/excelize/v2"

	"alfredoptarigan/resume-lens/internal/models"
)

func sampleReport() *models.MatchReport {
	r := models.NewMatchReport()
	r.JobTitle = "Backend Engineer"
	r.RequiredSkills = models.NewSkillSet("python", "aws")
	r.ExperienceEnvelope = models.ExperienceRange{Min: 3, Max: 5}
	r.Processed = 3
	r.Buckets[models.TierPerfectMatch] = []models.ClassifiedCandidate{{
		ApplicantName: "Jane", ResumeName: "jane.pdf", Score: "85.00%", ExperienceYears: 4,
		MatchedSkills: models.NewSkillSet("python", "aws"), MatchedCount: 2, TotalSkills: 2,
		Tier: models.TierPerfectMatch, ViewURL: "https://hr.example.com/api/v1/files/view?token=abc",
	}}
	r.Buckets[models.TierNotGood] = []models.ClassifiedCandidate{
		{ApplicantName: "Amy", ResumeName: "amy.doc", Score: "30.00%", Tier: models.TierNotGood, TotalSkills: 2},
		{ApplicantName: "Bob", ResumeName: "bob.docx", Score: "12.00%", Tier: models.TierNotGood, TotalSkills: 2},
	}
	r.Failures = []models.ResumeFailure{{ApplicantName: "Broken", ResumeName: "broken.pdf", Error: "text extraction failed"}}
	return r
}

func TestWriteReport_OneRowPerCandidate(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(candidatesSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("candidate rows = %d, want header + 3", len(rows))
	}

	jane := rows[1]
	want := []string{"PerfectMatched", "Jane", "jane.pdf", "85.00%", "4", "2 out of 2", "aws, python", "Open"}
	if !slices.Equal(jane, want) {
		t.Errorf("first row = %v, want %v", jane, want)
	}
	if rows[3][1] != "Bob" {
		t.Errorf("last row = %v", rows[3])
	}

	ok, link, err := f.GetCellHyperLink(candidatesSheet, "H2")
	if err != nil || !ok || link != "https://hr.example.com/api/v1/files/view?token=abc" {
		t.Errorf("H2 hyperlink = %v %q %v", ok, link, err)
	}

	failures, err := f.GetRows(failuresSheet)
	if err != nil || len(failures) != 2 {
		t.Errorf("failure rows = %v, %v", failures, err)
	}

	title, _ := f.GetCellValue(summarySheet, "B1")
	if title != "Backend Engineer" {
		t.Errorf("summary title = %q", title)
	}
}

func TestWriteReport_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, models.NewMatchReport()); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, _ := f.GetRows(candidatesSheet)
	if len(rows) != 1 {
		t.Errorf("rows = %d, want header only", len(rows))
	}
	if idx, _ := f.GetSheetIndex(failuresSheet); idx != -1 {
		t.Error("failures sheet created for a report without failures")
	}
}

func TestSaveReport_EnsuresXlsxExtension(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report")

	path, err := SaveReport(sampleReport(), out)
	if err != nil {
		t.Fatalf("SaveReport() error = %v", err)
	}
	if path != out+".xlsx" {
		t.Errorf("path = %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("stat: %v", err)
	}
}
