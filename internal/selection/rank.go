package selection

import (
	"sort"

	"github.com/offerline/selection-cli/internal/model"
)

// SelectTopApproved filters to candidates that passed the hard filter and
// were approved by scoring, orders them by score descending, and truncates to
// topN. Equal scores keep their original encounter order: the sort is
// explicitly stable, with no secondary key.
func SelectTopApproved(evaluated []model.EvaluatedCandidate, topN int) []model.EvaluatedCandidate {
	approved := make([]model.EvaluatedCandidate, 0, len(evaluated))
	for _, e := range evaluated {
		if e.HardRejected() || e.Score == nil {
			continue
		}
		if e.Score.Decision != model.DecisionApprove {
			continue
		}
		approved = append(approved, e)
	}

	sort.SliceStable(approved, func(i, j int) bool {
		return approved[i].Score.Score > approved[j].Score.Score
	})

	if topN >= 0 && len(approved) > topN {
		approved = approved[:topN]
	}
	return approved
}
