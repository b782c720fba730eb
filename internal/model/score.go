package model

// Tier is the coarse letter bucket derived purely from the numeric score.
type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
)

// Decision is the scoring verdict for a candidate.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionHold    Decision = "hold"
	DecisionReject  Decision = "reject"
)

// Tier breakpoints. The model's own tier claim is always discarded and the
// tier recomputed from the score.
const (
	tierABreak = 80
	tierBBreak = 65
	tierCBreak = 50
)

// Default decision thresholds used when the model returns an unrecognized
// decision and no tuned thresholds are in play.
const (
	approveThreshold = 70
	holdThreshold    = 55
)

// DecisionThresholds holds the score cutoffs for deriving a verdict from the
// numeric score. The zero value means the production defaults (70/55), so
// callers that never tune thresholds can pass it through untouched.
type DecisionThresholds struct {
	Approve float64
	Hold    float64
}

// DecisionFor derives a verdict from the numeric score using these cutoffs.
func (t DecisionThresholds) DecisionFor(score float64) Decision {
	approve, hold := t.Approve, t.Hold
	if approve == 0 {
		approve = approveThreshold
	}
	if hold == 0 {
		hold = holdThreshold
	}
	switch {
	case score >= approve:
		return DecisionApprove
	case score >= hold:
		return DecisionHold
	default:
		return DecisionReject
	}
}

// SelectionScore is the normalized result of scoring one candidate. Values
// always satisfy the normalization contract: the tier matches the score, the
// decision is one of the three known verdicts, and the angle list holds
// between 3 and 5 entries.
type SelectionScore struct {
	Score    float64  `json:"score"`
	Tier     Tier     `json:"tier"`
	Decision Decision `json:"decision"`
	Reasons  []string `json:"reasons"`
	Risks    []string `json:"risks"`
	Angles   []string `json:"angles"`
}

// TierForScore maps a numeric score onto its letter tier.
func TierForScore(score float64) Tier {
	switch {
	case score >= tierABreak:
		return TierA
	case score >= tierBBreak:
		return TierB
	case score >= tierCBreak:
		return TierC
	default:
		return TierD
	}
}

// DecisionForScore derives a verdict from the numeric score using the default
// thresholds. Used when the model's decision string is missing or not a known
// verdict.
func DecisionForScore(score float64) Decision {
	return DecisionThresholds{}.DecisionFor(score)
}

// ValidDecision reports whether d is one of the three known verdicts.
func ValidDecision(d Decision) bool {
	switch d {
	case DecisionApprove, DecisionHold, DecisionReject:
		return true
	}
	return false
}
