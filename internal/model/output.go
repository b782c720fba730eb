package model

import (
	"strings"
	"time"
)

// StatusQueued is the lifecycle status every variant carries at creation.
// Downstream consumers own all later transitions.
const StatusQueued = "queued"

// CandidateProduct is the publish-ready shape of one variant of an approved
// base candidate.
type CandidateProduct struct {
	ID            string `json:"id"`
	Slug          string `json:"slug"`
	Vertical      string `json:"vertical,omitempty"`
	Name          string `json:"name"`
	BaseAmazonURL string `json:"baseAmazonUrl"`
	TrackingTag   string `json:"trackingTag"`
	TargetUser    string `json:"targetUser,omitempty"`
	KeyProblem    string `json:"keyProblem,omitempty"`
	Angle         string `json:"angle"`
}

// TestPlan records where a variant's base ranked and what its siblings are.
type TestPlan struct {
	Priority           int      `json:"priority"`
	Angles             []string `json:"angles"`
	VariantsToGenerate int      `json:"variantsToGenerate"`
}

// Lifecycle holds the creation and expiry window shared by all variants of a
// run.
type Lifecycle struct {
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// OutputItem is one unit of the pipeline's output artifact: a variant plus a
// frozen snapshot of its base's selection score.
type OutputItem struct {
	Product   CandidateProduct `json:"product"`
	Score     SelectionScore   `json:"score"`
	TestPlan  TestPlan         `json:"testPlan"`
	Lifecycle Lifecycle        `json:"lifecycle"`
}

// OutputArtifact is the versioned container handed to downstream systems.
// Exactly one is produced per run and it is never partially written.
type OutputArtifact struct {
	SchemaVersion string       `json:"schemaVersion"`
	GeneratedAt   time.Time    `json:"generatedAt"`
	RunID         string       `json:"runId"`
	Defaults      Defaults     `json:"defaults"`
	Items         []OutputItem `json:"items"`
}

// RunID derives the run identifier from the generation timestamp: the UTC
// RFC 3339 form with every non-alphanumeric separator normalized to a hyphen.
// Deterministic, so an artifact correlates to its generation instant without
// a separate counter.
func RunID(t time.Time) string {
	ts := t.UTC().Format(time.RFC3339)
	ts = strings.ToLower(ts)

	var b strings.Builder
	b.Grow(len(ts))
	for _, r := range ts {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return "run-" + b.String()
}
