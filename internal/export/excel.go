package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"alfredoptarigan/resume-lens/internal/models"
)

const (
	summarySheet    = "Summary"
	candidatesSheet = "Candidates"
	failuresSheet   = "Failures"
)

// tierColors fills candidate rows by tier.
var tierColors = map[models.Tier]string{
	models.TierPerfectMatch: "C6EFCE",
	models.TierTopMatch:     "E2EFDA",
	models.TierGoodMatch:    "FFEB9C",
	models.TierPoorMatch:    "FFC7CE",
	models.TierNotGood:      "FF9999",
}

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// WriteReport renders the match report as an xlsx workbook into w.
func WriteReport(w io.Writer, report *models.MatchReport) error {
	f, err := build(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveReport writes the workbook to outputPath, adding the .xlsx extension
// when missing, and returns the final path.
func SaveReport(report *models.MatchReport, outputPath string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	f, err := build(report)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := f.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return outputPath, nil
}

func build(report *models.MatchReport) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(candidatesSheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := createSummarySheet(f, report); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := createCandidatesSheet(f, report.Candidates()); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create candidates sheet: %w", err)
	}
	if len(report.Failures) > 0 {
		if err := createFailuresSheet(f, report.Failures); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create failures sheet: %w", err)
		}
	}

	return f, nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
}

func createSummarySheet(f *excelize.File, report *models.MatchReport) error {
	f.SetColWidth(summarySheet, "A", "A", 28)
	f.SetColWidth(summarySheet, "B", "B", 60)

	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	title := report.JobTitle
	if title == "" {
		title = "-"
	}

	rows := [][2]any{
		{"Job Title:", title},
		{"Generated:", time.Now().Format("2006-01-02 15:04:05")},
		{"Experience Range (years):", fmt.Sprintf("%g - %g", report.ExperienceEnvelope.Min, report.ExperienceEnvelope.Max)},
		{"Required Skills:", strings.Join(report.RequiredSkills.Sorted(), ", ")},
		{"Resumes Scored:", report.Processed},
		{"Resumes Failed:", len(report.Failures)},
	}
	for _, t := range models.Tiers {
		rows = append(rows, [2]any{string(t) + ":", len(report.Buckets[t])})
	}

	for i, r := range rows {
		row := i + 1
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), r[0])
		f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), r[1])
	}

	return nil
}

func createCandidatesSheet(f *excelize.File, candidates []models.ClassifiedCandidate) error {
	widths := map[string]float64{"A": 16, "B": 25, "C": 25, "D": 10, "E": 12, "F": 14, "G": 40, "H": 12}
	for col, w := range widths {
		f.SetColWidth(candidatesSheet, col, col, w)
	}

	header, err := headerStyle(f)
	if err != nil {
		return err
	}

	styles := make(map[models.Tier]int, len(tierColors))
	for tier, color := range tierColors {
		style, err := f.NewStyle(&excelize.Style{
			Fill:   excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Border: thinBorder,
		})
		if err != nil {
			return err
		}
		styles[tier] = style
	}

	headers := []string{"Tier", "Applicant", "Resume", "Score", "Experience", "Skills Matched", "Matched Skills", "Resume Link"}
	for col, h := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+col)))
		f.SetCellValue(candidatesSheet, cell, h)
		f.SetCellStyle(candidatesSheet, cell, cell, header)
	}

	for i, c := range candidates {
		row := i + 2
		f.SetCellValue(candidatesSheet, fmt.Sprintf("A%d", row), string(c.Tier))
		f.SetCellValue(candidatesSheet, fmt.Sprintf("B%d", row), c.ApplicantName)
		f.SetCellValue(candidatesSheet, fmt.Sprintf("C%d", row), c.ResumeName)
		f.SetCellValue(candidatesSheet, fmt.Sprintf("D%d", row), c.Score)
		f.SetCellValue(candidatesSheet, fmt.Sprintf("E%d", row), c.ExperienceYears)
		f.SetCellValue(candidatesSheet, fmt.Sprintf("F%d", row), c.MatchedLabel())
		f.SetCellValue(candidatesSheet, fmt.Sprintf("G%d", row), strings.Join(c.MatchedSkills.Sorted(), ", "))
		f.SetCellStyle(candidatesSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("H%d", row), styles[c.Tier])

		if c.ViewURL != "" {
			cell := fmt.Sprintf("H%d", row)
			f.SetCellValue(candidatesSheet, cell, "Open")
			f.SetCellHyperLink(candidatesSheet, cell, c.ViewURL, "External")
		}
	}

	if len(candidates) > 0 {
		f.AutoFilter(candidatesSheet, fmt.Sprintf("A1:H%d", len(candidates)+1), []excelize.AutoFilterOptions{})
	}

	return f.SetPanes(candidatesSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func createFailuresSheet(f *excelize.File, failures []models.ResumeFailure) error {
	if _, err := f.NewSheet(failuresSheet); err != nil {
		return err
	}
	f.SetColWidth(failuresSheet, "A", "B", 25)
	f.SetColWidth(failuresSheet, "C", "C", 60)

	header, err := headerStyle(f)
	if err != nil {
		return err
	}

	for col, h := range []string{"Applicant", "Resume", "Error"} {
		cell := fmt.Sprintf("%s1", string(rune('A'+col)))
		f.SetCellValue(failuresSheet, cell, h)
		f.SetCellStyle(failuresSheet, cell, cell, header)
	}

	for i, fail := range failures {
		row := i + 2
		f.SetCellValue(failuresSheet, fmt.Sprintf("A%d", row), fail.ApplicantName)
		f.SetCellValue(failuresSheet, fmt.Sprintf("B%d", row), fail.ResumeName)
		f.SetCellValue(failuresSheet, fmt.Sprintf("C%d", row), fail.Error)
	}

	return nil
}
