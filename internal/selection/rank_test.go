package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offerline/selection-cli/internal/model"
)

func evaluatedWith(name string, score model.SelectionScore) model.EvaluatedCandidate {
	return model.EvaluatedCandidate{
		Candidate: viableCandidate(name),
		Identity:  "cand-" + name,
		Score:     &score,
	}
}

func TestSelectTopApproved_StableTieOrder(t *testing.T) {
	evaluated := []model.EvaluatedCandidate{
		evaluatedWith("first", approveScore(70, "a", "b", "c")),
		evaluatedWith("second", approveScore(85, "a", "b", "c")),
		evaluatedWith("third", approveScore(85, "a", "b", "c")),
		evaluatedWith("fourth", approveScore(60, "a", "b", "c")),
	}

	selected := SelectTopApproved(evaluated, 3)
	require.Len(t, selected, 3)

	// Equal scores keep their input order: second before third.
	assert.Equal(t, "second", selected[0].Candidate.Name)
	assert.Equal(t, "third", selected[1].Candidate.Name)
	assert.Equal(t, "first", selected[2].Candidate.Name)
}

func TestSelectTopApproved_FiltersNonApproved(t *testing.T) {
	hold := approveScore(90, "a", "b", "c")
	hold.Decision = model.DecisionHold
	reject := approveScore(95, "a", "b", "c")
	reject.Decision = model.DecisionReject

	rejected := evaluatedWith("rejected", approveScore(99, "a", "b", "c"))
	rejected.RejectReasons = []string{"base url is not http(s)"}

	unscored := model.EvaluatedCandidate{
		Candidate: viableCandidate("unscored"),
		Identity:  "cand-unscored",
	}

	evaluated := []model.EvaluatedCandidate{
		evaluatedWith("held", hold),
		evaluatedWith("rejected-by-model", reject),
		rejected,
		unscored,
		evaluatedWith("approved", approveScore(75, "a", "b", "c")),
	}

	selected := SelectTopApproved(evaluated, 10)
	require.Len(t, selected, 1)
	assert.Equal(t, "approved", selected[0].Candidate.Name)
}

func TestSelectTopApproved_Truncates(t *testing.T) {
	var evaluated []model.EvaluatedCandidate
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		evaluated = append(evaluated, evaluatedWith(name, approveScore(80, "x", "y", "z")))
	}

	assert.Len(t, SelectTopApproved(evaluated, 2), 2)
	assert.Len(t, SelectTopApproved(evaluated, 5), 5)
	assert.Len(t, SelectTopApproved(evaluated, 99), 5)
	assert.Empty(t, SelectTopApproved(evaluated, 0))
}

func TestSelectTopApproved_Empty(t *testing.T) {
	assert.Empty(t, SelectTopApproved(nil, 5))
}
