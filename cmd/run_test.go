package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offerline/selection-cli/internal/config"
	"github.com/offerline/selection-cli/internal/selection"
)

func testConfig() *config.Config {
	return &config.Config{
		Selection: config.SelectionConfig{
			TopN:               8,
			VariantsPerProduct: 3,
			MinPrice:           15,
			MaxPrice:           60,
			RetentionDays:      14,
			FallbackAngle:      "Everyday problem, solved",
			OnScoreError:       "fail",
			MaxParallelScores:  1,
			DefaultTrackingTag: "offerline-20",
			DefaultMarket:      "US",
		},
	}
}

func TestPipelineOptions_Defaults(t *testing.T) {
	cfg = testConfig()
	runTopN = 0

	opts := pipelineOptions()

	assert.Equal(t, 8, opts.TopN)
	assert.Equal(t, 3, opts.VariantsPerProduct)
	assert.Equal(t, 14*24.0, opts.Retention.Hours())
	assert.Equal(t, 15.0, opts.Filter.MinPrice)
	assert.Equal(t, 60.0, opts.Filter.MaxPrice)
	assert.Equal(t, "offerline-20", opts.FallbackDefaults.TrackingTag)
	assert.Equal(t, "US", opts.FallbackDefaults.Market)
	assert.False(t, opts.SkipScoreErrors)

	serial, ok := opts.Sequencer.(selection.Serial)
	require.True(t, ok)
	assert.Nil(t, serial.Limiter)
}

func TestPipelineOptions_TopNOverride(t *testing.T) {
	cfg = testConfig()
	runTopN = 2

	opts := pipelineOptions()
	assert.Equal(t, 2, opts.TopN)
}

func TestPipelineOptions_SkipMode(t *testing.T) {
	cfg = testConfig()
	runTopN = 0
	cfg.Selection.OnScoreError = "skip"

	opts := pipelineOptions()
	assert.True(t, opts.SkipScoreErrors)
}

func TestPipelineOptions_PacedSerial(t *testing.T) {
	cfg = testConfig()
	runTopN = 0
	cfg.Selection.ScoreIntervalMs = 500

	opts := pipelineOptions()
	serial, ok := opts.Sequencer.(selection.Serial)
	require.True(t, ok)
	assert.NotNil(t, serial.Limiter)
}

func TestPipelineOptions_Bounded(t *testing.T) {
	cfg = testConfig()
	runTopN = 0
	cfg.Selection.MaxParallelScores = 4

	opts := pipelineOptions()
	bounded, ok := opts.Sequencer.(selection.Bounded)
	require.True(t, ok)
	assert.Equal(t, 4, bounded.Parallel)
}
