package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/offerline/selection-cli/internal/artifact"
	"github.com/offerline/selection-cli/internal/model"
	"github.com/offerline/selection-cli/internal/selection"
)

var validateInput string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an input artifact without scoring",
	Long:  "Parses the artifact, derives identities, and applies the hard filter. No model calls, no output artifact.",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := artifact.ReadInput(validateInput)
		if err != nil {
			return eris.Wrap(err, "read input artifact")
		}

		report := buildFilterReport(input, selection.FilterConfig{
			MinPrice: cfg.Selection.MinPrice,
			MaxPrice: cfg.Selection.MaxPrice,
		})

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

// filterReport is the preflight view of an input artifact: which candidates
// would survive the hard filter and why the rest would not.
type filterReport struct {
	Total     int                `json:"total"`
	Passed    int                `json:"passed"`
	Rejected  int                `json:"rejected"`
	Survivors []string           `json:"survivors"`
	Rejects   []filterReportItem `json:"rejects,omitempty"`
}

type filterReportItem struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Reasons []string `json:"reasons"`
}

func buildFilterReport(input *model.InputArtifact, fc selection.FilterConfig) filterReport {
	report := filterReport{
		Total:     len(input.Items),
		Survivors: []string{},
	}
	for _, c := range input.Items {
		id := model.DeriveIdentity(c)
		reasons := selection.HardReject(c, fc)
		if len(reasons) == 0 {
			report.Passed++
			report.Survivors = append(report.Survivors, id)
			continue
		}
		report.Rejected++
		report.Rejects = append(report.Rejects, filterReportItem{
			ID:      id,
			Name:    c.Name,
			Reasons: reasons,
		})
	}
	return report
}

func init() {
	validateCmd.Flags().StringVar(&validateInput, "input", "", "path to the input artifact (required)")
	_ = validateCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(validateCmd)
}
