package selection

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/offerline/selection-cli/internal/model"
)

// CandidateScorer is the single contract the pipeline has with the scoring
// service: given a candidate, return a normalized score or fail.
type CandidateScorer interface {
	Score(ctx context.Context, c model.RawCandidate) (model.SelectionScore, error)
}

// Options configures one pipeline run.
type Options struct {
	TopN               int
	VariantsPerProduct int
	Retention          time.Duration
	Filter             FilterConfig

	// FallbackDefaults back-fill artifact defaults the input omits.
	FallbackDefaults model.Defaults

	// SkipScoreErrors makes a failed scoring call drop that candidate and
	// continue instead of aborting the run. Off by default: downstream
	// consumers may rely on every approved candidate having been scored.
	SkipScoreErrors bool

	// Sequencer drives the scoring calls. Nil means Serial with no pacing.
	Sequencer Sequencer

	// Now is the run clock. Nil means time.Now.
	Now func() time.Time
}

// Summary holds the run-level counts surfaced after every run.
type Summary struct {
	Total           int `json:"total"`
	HardRejected    int `json:"hardRejected"`
	ScoreFailed     int `json:"scoreFailed"`
	ServiceRejected int `json:"serviceRejected"`
	Held            int `json:"held"`
	ApprovedBases   int `json:"approvedBases"`
	Variants        int `json:"variants"`
}

// Log emits the summary with structured fields.
func (s Summary) Log(runID string) {
	zap.L().Info("selection run summary",
		zap.String("run_id", runID),
		zap.Int("total", s.Total),
		zap.Int("hard_rejected", s.HardRejected),
		zap.Int("score_failed", s.ScoreFailed),
		zap.Int("service_rejected", s.ServiceRejected),
		zap.Int("held", s.Held),
		zap.Int("approved_bases", s.ApprovedBases),
		zap.Int("variants", s.Variants),
	)
}

// Pipeline runs the staged selection flow: identity + hard filter, scoring,
// ranking, expansion, assembly. The working set is owned by the run; callers
// get back only the finished artifact.
type Pipeline struct {
	scorer CandidateScorer
	opts   Options
}

// New builds a Pipeline.
func New(scorer CandidateScorer, opts Options) *Pipeline {
	if opts.Sequencer == nil {
		opts.Sequencer = Serial{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{scorer: scorer, opts: opts}
}

// Run executes one pipeline run over the input artifact. An empty input is a
// clean no-op: nil artifact, zero summary, nil error. On error no artifact is
// returned, so callers can never hand a partial result downstream.
func (p *Pipeline) Run(ctx context.Context, input model.InputArtifact) (*model.OutputArtifact, Summary, error) {
	summary := Summary{Total: len(input.Items)}
	log := zap.L().With(zap.String("phase", "selection"))

	if len(input.Items) == 0 {
		log.Info("no candidates in input, nothing to do")
		summary.Log(model.RunID(p.opts.Now()))
		return nil, summary, nil
	}

	// Stage 1: identity derivation and hard filtering.
	evaluated := make([]model.EvaluatedCandidate, len(input.Items))
	for i, c := range input.Items {
		reasons := HardReject(c, p.opts.Filter)
		evaluated[i] = model.EvaluatedCandidate{
			Candidate:     c,
			Identity:      model.DeriveIdentity(c),
			RejectReasons: reasons,
		}
		if len(reasons) > 0 {
			summary.HardRejected++
			log.Debug("candidate hard-rejected",
				zap.String("id", evaluated[i].Identity),
				zap.Strings("reasons", reasons),
			)
		}
	}

	// Stage 2: score the survivors. Each index is written by exactly one
	// invocation, so the bounded sequencer needs no locking around scores.
	survivors := make([]int, 0, len(evaluated))
	for i := range evaluated {
		if !evaluated[i].HardRejected() {
			survivors = append(survivors, i)
		}
	}
	log.Info("scoring candidates",
		zap.Int("total", summary.Total),
		zap.Int("survivors", len(survivors)),
	)

	var scoreFailed atomic.Int64
	err := p.opts.Sequencer.Each(ctx, len(survivors), func(ctx context.Context, n int) error {
		idx := survivors[n]
		score, err := p.scorer.Score(ctx, evaluated[idx].Candidate)
		if err != nil {
			if p.opts.SkipScoreErrors {
				scoreFailed.Add(1)
				log.Warn("scoring failed, skipping candidate",
					zap.String("id", evaluated[idx].Identity),
					zap.Error(err),
				)
				return nil
			}
			return eris.Wrapf(err, "pipeline: score candidate %s", evaluated[idx].Identity)
		}
		evaluated[idx].Score = &score
		return nil
	})
	if err != nil {
		return nil, summary, err
	}
	summary.ScoreFailed = int(scoreFailed.Load())

	for i := range evaluated {
		if evaluated[i].Score == nil {
			continue
		}
		switch evaluated[i].Score.Decision {
		case model.DecisionReject:
			summary.ServiceRejected++
		case model.DecisionHold:
			summary.Held++
		}
	}

	// Stage 3: rank and truncate.
	selected := SelectTopApproved(evaluated, p.opts.TopN)
	summary.ApprovedBases = len(selected)

	// Stage 4: expand into variants and assemble.
	runTime := p.opts.Now().UTC()
	defaults := resolveDefaults(input.Defaults, p.opts.FallbackDefaults)

	items := make([]model.OutputItem, 0, len(selected)*p.opts.VariantsPerProduct)
	for rank, base := range selected {
		items = append(items, Expand(base, rank+1, p.opts.VariantsPerProduct, runTime, p.opts.Retention, defaults)...)
	}
	summary.Variants = len(items)

	artifact := Assemble(items, runTime, defaults)
	summary.Log(artifact.RunID)
	return &artifact, summary, nil
}

// resolveDefaults carries input defaults through, back-filling any field the
// input left empty.
func resolveDefaults(in, fallback model.Defaults) model.Defaults {
	out := in
	if out.TrackingTag == "" {
		out.TrackingTag = fallback.TrackingTag
	}
	if out.Market == "" {
		out.Market = fallback.Market
	}
	return out
}
