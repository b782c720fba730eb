package selection

import (
	"time"

	"github.com/offerline/selection-cli/internal/model"
)

// Assemble wraps expanded variants and run metadata into the single versioned
// artifact a run hands off downstream.
func Assemble(items []model.OutputItem, runTime time.Time, defaults model.Defaults) model.OutputArtifact {
	if items == nil {
		items = []model.OutputItem{}
	}
	return model.OutputArtifact{
		SchemaVersion: model.SchemaVersion,
		GeneratedAt:   runTime.UTC(),
		RunID:         model.RunID(runTime),
		Defaults:      defaults,
		Items:         items,
	}
}
