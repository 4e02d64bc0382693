package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/resume-lens/internal/config"
	"alfredoptarigan/resume-lens/internal/export"
	"alfredoptarigan/resume-lens/internal/models"
	"alfredoptarigan/resume-lens/internal/services"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score every resume in a directory against a job description",
	Example: `  matchctl match --jd role.pdf --resumes ./resumes
  cat role.txt | matchctl match --jd - --resumes ./resumes --xlsx report.xlsx`,
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().String("jd", "", "job description file (pdf, doc, docx, txt) or - for stdin")
	matchCmd.Flags().String("resumes", "", "directory holding the resumes")
	matchCmd.Flags().String("xlsx", "", "also write the report to this Excel file")
	matchCmd.Flags().Bool("json", false, "print the report as JSON")

	matchCmd.MarkFlagRequired("jd")
	matchCmd.MarkFlagRequired("resumes")
}

func runMatch(cmd *cobra.Command, _ []string) error {
	debug, _ := cmd.Flags().GetBool("debug")
	logJSON, _ := cmd.Flags().GetBool("log-json")
	jdArg, _ := cmd.Flags().GetString("jd")
	dir, _ := cmd.Flags().GetString("resumes")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg := config.Load()
	cfg.Log.Debug = cfg.Log.Debug || debug
	cfg.Log.JSON = cfg.Log.JSON || logJSON

	// Logs go to stderr so stdout carries only the report.
	cfg.Log.Stderr = true
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer logger.Sync()

	jd, err := jobDescriptionInput(jdArg, cmd.InOrStdin())
	if err != nil {
		return err
	}

	candidates, err := collectResumes(dir)
	if err != nil {
		return err
	}
	logger.Info("collected resumes", zap.String("dir", dir), zap.Int("count", len(candidates)))

	pipeline, err := buildPipeline(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	report, err := pipeline.Run(cmd.Context(), jd, candidates)
	if err != nil {
		return err
	}

	if xlsxPath != "" {
		path, err := export.SaveReport(report, xlsxPath)
		if err != nil {
			return err
		}
		logger.Info("report written", zap.String("path", path))
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return printReport(out, report)
}

func jobDescriptionInput(arg string, stdin io.Reader) (services.JDInput, error) {
	if arg != "-" {
		return services.JDInput{FilePath: arg}, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return services.JDInput{}, fmt.Errorf("reading job description from stdin: %w", err)
	}
	return services.JDInput{Text: string(data)}, nil
}

// collectResumes lists the files directly inside dir in name order. The
// applicant name is the file name without its extension.
func collectResumes(dir string) ([]services.ResumeCandidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading resume directory: %w", err)
	}

	var out []services.ResumeCandidate
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		name := e.Name()
		out = append(out, services.ResumeCandidate{
			ApplicantName: strings.TrimSuffix(name, filepath.Ext(name)),
			ResumeName:    name,
			Path:          filepath.Join(dir, name),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ResumeName < out[j].ResumeName })
	return out, nil
}

func printReport(w io.Writer, report *models.MatchReport) error {
	fmt.Fprintf(w, "Experience: %g-%g years\n", report.ExperienceEnvelope.Min, report.ExperienceEnvelope.Max)
	fmt.Fprintf(w, "Required skills: %s\n\n", strings.Join(report.RequiredSkills.Sorted(), ", "))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIER\tAPPLICANT\tRESUME\tSCORE\tYEARS\tSKILLS")
	for _, c := range report.Candidates() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%g\t%s\n", c.Tier, c.ApplicantName, c.ResumeName, c.Score, c.ExperienceYears, c.MatchedLabel())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(report.Failures) > 0 {
		fmt.Fprintf(w, "\nFailed (%d):\n", len(report.Failures))
		for _, f := range report.Failures {
			fmt.Fprintf(w, "  %s: %s\n", f.ResumeName, f.Error)
		}
	}
	return nil
}
