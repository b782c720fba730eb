// Package model defines the data shapes flowing through the selection pipeline.
package model

// SchemaVersion is the artifact schema version understood by this build,
// shared by input and output artifacts.
const SchemaVersion = "1.0"

// RawCandidate is one prospective product as supplied by the input artifact.
// Only Name and BaseAmazonURL are guaranteed non-empty by upstream convention;
// every other field may be absent.
type RawCandidate struct {
	ASIN           string   `json:"asin,omitempty" yaml:"asin"`
	BaseAmazonURL  string   `json:"baseAmazonUrl" yaml:"baseAmazonUrl"`
	Name           string   `json:"name" yaml:"name"`
	Vertical       string   `json:"vertical,omitempty" yaml:"vertical"`
	TargetUser     string   `json:"targetUser,omitempty" yaml:"targetUser"`
	KeyProblem     string   `json:"keyProblem,omitempty" yaml:"keyProblem"`
	EstimatedPrice *float64 `json:"estimatedPrice,omitempty" yaml:"estimatedPrice"`
	PrimeEligible  *bool    `json:"primeEligible,omitempty" yaml:"primeEligible"`
	RatingBucket   string   `json:"ratingBucket,omitempty" yaml:"ratingBucket"`
	ReviewBucket   string   `json:"reviewBucket,omitempty" yaml:"reviewBucket"`
	SourceNotes    string   `json:"sourceNotes,omitempty" yaml:"sourceNotes"`
}

// Defaults carries shared values propagated from the input artifact to every
// output item.
type Defaults struct {
	TrackingTag string `json:"trackingTag,omitempty" yaml:"trackingTag"`
	Market      string `json:"market,omitempty" yaml:"market"`
}

// InputArtifact is the versioned document read once per run.
type InputArtifact struct {
	SchemaVersion string         `json:"schemaVersion" yaml:"schemaVersion"`
	Defaults      Defaults       `json:"defaults,omitempty" yaml:"defaults"`
	Items         []RawCandidate `json:"items" yaml:"items"`
}

// EvaluatedCandidate pairs a RawCandidate with its derived identity, hard
// filter outcome, and (once scoring ran) its normalized score. It is an
// intra-run working structure and is never persisted.
type EvaluatedCandidate struct {
	Candidate     RawCandidate
	Identity      string
	RejectReasons []string
	Score         *SelectionScore
}

// HardRejected reports whether the candidate failed deterministic filtering
// and must not reach the scoring service.
func (e EvaluatedCandidate) HardRejected() bool {
	return len(e.RejectReasons) > 0
}
