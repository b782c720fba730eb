package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunID(t *testing.T) {
	ts := time.Date(2026, 8, 31, 12, 30, 45, 0, time.UTC)
	assert.Equal(t, "run-2026-08-31t12-30-45z", RunID(ts))
}

func TestRunID_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	local := time.Date(2026, 8, 31, 7, 30, 45, 0, loc)
	utc := time.Date(2026, 8, 31, 12, 30, 45, 0, time.UTC)
	assert.Equal(t, RunID(utc), RunID(local))
}

func TestRunID_Deterministic(t *testing.T) {
	ts := time.Now()
	assert.Equal(t, RunID(ts), RunID(ts))
}
