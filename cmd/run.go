package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/offerline/selection-cli/internal/artifact"
	"github.com/offerline/selection-cli/internal/model"
	"github.com/offerline/selection-cli/internal/selection"
	anthropicpkg "github.com/offerline/selection-cli/pkg/anthropic"
)

var (
	runInput  string
	runOutput string
	runTopN   int
	runDryRun bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run selection over an input artifact",
	Long:  "Reads a candidate artifact, hard-filters, scores survivors via Claude, and writes the expanded output artifact.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate(); err != nil {
			return err
		}

		input, err := artifact.ReadInput(runInput)
		if err != nil {
			return eris.Wrap(err, "read input artifact")
		}

		if runDryRun {
			return dryRun(input)
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		rec, err := st.CreateRun(ctx)
		if err != nil {
			return eris.Wrap(err, "create run record")
		}

		client := anthropicpkg.NewClient(cfg.Anthropic.Key)
		scorer := selection.NewScorer(client, cfg.Anthropic.Model, cfg.Selection.FallbackAngle, model.DecisionThresholds{
			Approve: cfg.Selection.ApproveThreshold,
			Hold:    cfg.Selection.HoldThreshold,
		})
		p := selection.New(scorer, pipelineOptions())

		out, summary, err := p.Run(ctx, *input)
		if err != nil {
			if ferr := st.FailRun(ctx, rec.ID, err.Error()); ferr != nil {
				zap.L().Warn("recording run failure failed", zap.Error(ferr))
			}
			return eris.Wrap(err, "selection run")
		}

		if out == nil {
			zap.L().Info("input artifact had no candidates, no output written")
			return st.CompleteRun(ctx, rec.ID, "", "", summary)
		}

		if err := artifact.WriteOutput(runOutput, out); err != nil {
			if ferr := st.FailRun(ctx, rec.ID, err.Error()); ferr != nil {
				zap.L().Warn("recording run failure failed", zap.Error(ferr))
			}
			return eris.Wrap(err, "write output artifact")
		}

		if err := st.CompleteRun(ctx, rec.ID, out.RunID, runOutput, summary); err != nil {
			return eris.Wrap(err, "record run completion")
		}

		zap.L().Info("selection complete",
			zap.String("run_id", out.RunID),
			zap.String("output", runOutput),
			zap.Int("items", len(out.Items)),
		)
		return nil
	},
}

// pipelineOptions maps config to pipeline options, applying any
// command-line overrides.
func pipelineOptions() selection.Options {
	topN := cfg.Selection.TopN
	if runTopN > 0 {
		topN = runTopN
	}

	var seq selection.Sequencer
	if cfg.Selection.MaxParallelScores > 1 {
		seq = selection.Bounded{Parallel: cfg.Selection.MaxParallelScores}
	} else {
		serial := selection.Serial{}
		if cfg.Selection.ScoreIntervalMs > 0 {
			interval := time.Duration(cfg.Selection.ScoreIntervalMs) * time.Millisecond
			serial.Limiter = rate.NewLimiter(rate.Every(interval), 1)
		}
		seq = serial
	}

	return selection.Options{
		TopN:               topN,
		VariantsPerProduct: cfg.Selection.VariantsPerProduct,
		Retention:          cfg.Selection.Retention(),
		Filter: selection.FilterConfig{
			MinPrice: cfg.Selection.MinPrice,
			MaxPrice: cfg.Selection.MaxPrice,
		},
		FallbackDefaults: model.Defaults{
			TrackingTag: cfg.Selection.DefaultTrackingTag,
			Market:      cfg.Selection.DefaultMarket,
		},
		SkipScoreErrors: cfg.Selection.OnScoreError == "skip",
		Sequencer:       seq,
	}
}

// dryRun reports what the hard filter would do without calling the model
// or writing anything.
func dryRun(input *model.InputArtifact) error {
	report := buildFilterReport(input, selection.FilterConfig{
		MinPrice: cfg.Selection.MinPrice,
		MaxPrice: cfg.Selection.MaxPrice,
	})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "", "path to the input artifact (JSON or YAML, required)")
	runCmd.Flags().StringVar(&runOutput, "output", "selected-products.json", "path for the output artifact")
	runCmd.Flags().IntVar(&runTopN, "top-n", 0, "override the configured approval cap")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "report hard-filter results without scoring or writing output")
	_ = runCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(runCmd)
}
