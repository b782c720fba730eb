package selection

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/offerline/selection-cli/internal/model"
	"github.com/offerline/selection-cli/internal/resilience"
	"github.com/offerline/selection-cli/pkg/anthropic"
)

// Scoring failures the caller can branch on.
var (
	// ErrEmptyResponse means the model returned no text content.
	ErrEmptyResponse = eris.New("scorer: empty model response")
	// ErrMalformedResponse means the model's text could not be parsed into
	// the expected structured shape.
	ErrMalformedResponse = eris.New("scorer: malformed model response")
)

// scorePrompt is the system prompt for candidate scoring.
const scorePrompt = `You are evaluating a physical product as a candidate for affiliate content pages. Score it 0-100 on:
- Problem clarity: does it solve one obvious, felt problem?
- Impulse fit: is it a consider-and-buy purchase rather than a researched one?
- Content leverage: can distinct creative angles be written about it?

Respond with ONLY valid JSON, no other text:
{"score": 0, "decision": "approve|hold|reject", "reasons": ["..."], "risks": ["..."], "angles": ["3 to 5 short creative hooks"]}`

const (
	angleMin = 3
	angleMax = 5

	scoreMaxTokens = 1024
)

// scorePayload is the loosely-typed shape we accept from the model before
// normalization. Every field may be absent or junk.
type scorePayload struct {
	Score    json.Number `json:"score"`
	Tier     string      `json:"tier"`
	Decision string      `json:"decision"`
	Reasons  []string    `json:"reasons"`
	Risks    []string    `json:"risks"`
	Angles   []string    `json:"angles"`
}

// Scorer invokes the model once per candidate and converts the untrusted
// response into a contract-valid SelectionScore. Nothing from the model is
// used un-normalized past this type.
type Scorer struct {
	client        anthropic.Client
	model         string
	fallbackAngle string
	thresholds    model.DecisionThresholds
	retry         resilience.RetryConfig
}

// NewScorer builds a Scorer. fallbackAngle pads short angle lists up to the
// three-angle minimum; the zero thresholds value means the default cutoffs.
func NewScorer(client anthropic.Client, modelID, fallbackAngle string, thresholds model.DecisionThresholds) *Scorer {
	cfg := resilience.DefaultRetryConfig()
	cfg.OnRetry = resilience.RetryLogger("anthropic", "score")
	return &Scorer{
		client:        client,
		model:         modelID,
		fallbackAngle: fallbackAngle,
		thresholds:    thresholds,
		retry:         cfg,
	}
}

// Score sends one candidate to the model and returns its normalized score.
// Transport failures and empty responses propagate to the caller; a response
// that parses but violates the contract is repaired locally and never fails.
func (s *Scorer) Score(ctx context.Context, c model.RawCandidate) (model.SelectionScore, error) {
	resp, err := resilience.DoVal(ctx, s.retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return s.client.CreateMessage(ctx, anthropic.MessageRequest{
			Model:     s.model,
			MaxTokens: scoreMaxTokens,
			System:    scorePrompt,
			Messages:  []anthropic.Message{{Role: "user", Content: describeCandidate(c)}},
		})
	})
	if err != nil {
		return model.SelectionScore{}, eris.Wrap(err, "scorer: create message")
	}

	resp.Usage.LogCost(s.model, "score")

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return model.SelectionScore{}, ErrEmptyResponse
	}

	payload, err := parseScorePayload(text)
	if err != nil {
		return model.SelectionScore{}, err
	}

	score := normalizeScore(payload, s.fallbackAngle, s.thresholds)
	zap.L().Debug("candidate scored",
		zap.String("name", c.Name),
		zap.Float64("score", score.Score),
		zap.String("tier", string(score.Tier)),
		zap.String("decision", string(score.Decision)),
	)
	return score, nil
}

// describeCandidate renders the per-candidate description sent to the model.
func describeCandidate(c model.RawCandidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product: %s\n", c.Name)
	if c.Vertical != "" {
		fmt.Fprintf(&b, "Vertical: %s\n", c.Vertical)
	}
	if c.KeyProblem != "" {
		fmt.Fprintf(&b, "Key problem: %s\n", c.KeyProblem)
	}
	if c.TargetUser != "" {
		fmt.Fprintf(&b, "Target user: %s\n", c.TargetUser)
	}
	if c.EstimatedPrice != nil {
		fmt.Fprintf(&b, "Estimated price: $%.2f\n", *c.EstimatedPrice)
	}
	if c.PrimeEligible != nil {
		fmt.Fprintf(&b, "Prime eligible: %t\n", *c.PrimeEligible)
	}
	if c.RatingBucket != "" {
		fmt.Fprintf(&b, "Rating bucket: %s\n", c.RatingBucket)
	}
	if c.ReviewBucket != "" {
		fmt.Fprintf(&b, "Review bucket: %s\n", c.ReviewBucket)
	}
	if c.SourceNotes != "" {
		fmt.Fprintf(&b, "Source notes: %s\n", c.SourceNotes)
	}
	return b.String()
}

// parseScorePayload finds the JSON object in the model's text (it may have
// surrounding prose) and decodes it into the partial payload shape.
func parseScorePayload(text string) (scorePayload, error) {
	jsonStart := strings.Index(text, "{")
	jsonEnd := strings.LastIndex(text, "}")
	if jsonStart < 0 || jsonEnd < 0 || jsonEnd <= jsonStart {
		return scorePayload{}, eris.Wrapf(ErrMalformedResponse, "no JSON object in %q", truncate(text, 120))
	}

	var payload scorePayload
	if err := json.Unmarshal([]byte(text[jsonStart:jsonEnd+1]), &payload); err != nil {
		return scorePayload{}, eris.Wrapf(ErrMalformedResponse, "decode: %v", err)
	}
	return payload, nil
}

// normalizeScore repairs a parsed payload into a contract-valid score. Total:
// it never fails, whatever the payload holds.
//
// The numeric score is NOT clamped into [0,100]; only a missing or non-finite
// value defaults to 0. The model's tier claim is always discarded.
func normalizeScore(p scorePayload, fallbackAngle string, thresholds model.DecisionThresholds) model.SelectionScore {
	score, err := p.Score.Float64()
	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
		score = 0
	}

	decision := model.Decision(p.Decision)
	if !model.ValidDecision(decision) {
		decision = thresholds.DecisionFor(score)
	}

	reasons := p.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	risks := p.Risks
	if risks == nil {
		risks = []string{}
	}

	angles := make([]string, 0, angleMax)
	for _, a := range p.Angles {
		if strings.TrimSpace(a) == "" {
			continue
		}
		angles = append(angles, a)
		if len(angles) == angleMax {
			break
		}
	}
	for len(angles) < angleMin {
		angles = append(angles, fallbackAngle)
	}

	return model.SelectionScore{
		Score:    score,
		Tier:     model.TierForScore(score),
		Decision: decision,
		Reasons:  reasons,
		Risks:    risks,
		Angles:   angles,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
