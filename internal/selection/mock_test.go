package selection

import (
	"context"
	"sync"

	"github.com/offerline/selection-cli/internal/model"
	"github.com/offerline/selection-cli/pkg/anthropic"
)

// mockAnthropicClient implements anthropic.Client for testing.
type mockAnthropicClient struct {
	response *anthropic.MessageResponse
	err      error
	calls    int
}

func (m *mockAnthropicClient) CreateMessage(_ context.Context, _ anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
	}
}

// fakeScorer implements CandidateScorer with canned per-name results.
type fakeScorer struct {
	scores map[string]model.SelectionScore
	errs   map[string]error

	mu    sync.Mutex
	calls []string
}

func (f *fakeScorer) Score(_ context.Context, c model.RawCandidate) (model.SelectionScore, error) {
	f.mu.Lock()
	f.calls = append(f.calls, c.Name)
	f.mu.Unlock()
	if err, ok := f.errs[c.Name]; ok {
		return model.SelectionScore{}, err
	}
	if s, ok := f.scores[c.Name]; ok {
		return s, nil
	}
	return model.SelectionScore{
		Score:    60,
		Tier:     model.TierForScore(60),
		Decision: model.DecisionHold,
		Reasons:  []string{},
		Risks:    []string{},
		Angles:   []string{"a", "b", "c"},
	}, nil
}

func approveScore(score float64, angles ...string) model.SelectionScore {
	return model.SelectionScore{
		Score:    score,
		Tier:     model.TierForScore(score),
		Decision: model.DecisionApprove,
		Reasons:  []string{"works"},
		Risks:    []string{},
		Angles:   angles,
	}
}

func floatPtr(f float64) *float64 { return &f }

// viableCandidate returns a candidate that passes every hard filter rule.
func viableCandidate(name string) model.RawCandidate {
	return model.RawCandidate{
		Name:           name,
		BaseAmazonURL:  "https://example.com/dp/" + name,
		Vertical:       "home",
		TargetUser:     "busy parents",
		KeyProblem:     "frustrating daily task",
		EstimatedPrice: floatPtr(30),
	}
}
