package selection

import (
	"fmt"
	"time"

	"github.com/offerline/selection-cli/internal/model"
)

// Expand turns one selected base candidate into its creative variants: one
// OutputItem per angle, up to variantsPerProduct. Variant identity and slug
// append a 1-based "-vN" suffix to the base's, so every variant traces back
// to its base. All variants share the base's rank as their test priority and
// the run's lifecycle window.
func Expand(base model.EvaluatedCandidate, rank, variantsPerProduct int, runTime time.Time, retention time.Duration, defaults model.Defaults) []model.OutputItem {
	if base.Score == nil {
		return nil
	}

	angles := base.Score.Angles
	if len(angles) > variantsPerProduct {
		angles = angles[:variantsPerProduct]
	}

	lifecycle := model.Lifecycle{
		Status:    model.StatusQueued,
		CreatedAt: runTime,
		ExpiresAt: runTime.Add(retention),
	}
	nameSlug := model.Slugify(base.Candidate.Name)

	items := make([]model.OutputItem, 0, len(angles))
	for i, angle := range angles {
		v := i + 1
		items = append(items, model.OutputItem{
			Product: model.CandidateProduct{
				ID:            fmt.Sprintf("%s-v%d", base.Identity, v),
				Slug:          fmt.Sprintf("%s-v%d", nameSlug, v),
				Vertical:      base.Candidate.Vertical,
				Name:          base.Candidate.Name,
				BaseAmazonURL: base.Candidate.BaseAmazonURL,
				TrackingTag:   defaults.TrackingTag,
				TargetUser:    base.Candidate.TargetUser,
				KeyProblem:    base.Candidate.KeyProblem,
				Angle:         angle,
			},
			Score: *base.Score,
			TestPlan: model.TestPlan{
				Priority:           rank,
				Angles:             base.Score.Angles,
				VariantsToGenerate: len(angles),
			},
			Lifecycle: lifecycle,
		})
	}
	return items
}
