// Package artifact reads input artifacts and writes output artifacts. The
// output side is atomic: downstream readers only ever observe a complete,
// schema-versioned file.
package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/offerline/selection-cli/internal/model"
)

// ErrUnsupportedSchema means the input declares a schema version this build
// does not understand.
var ErrUnsupportedSchema = eris.New("artifact: unsupported schema version")

// ReadInput loads and structurally validates the input artifact at path.
// JSON by default; .yaml/.yml files are decoded as YAML. Any failure here is
// terminal for the run: nothing has been scored yet and no output exists.
func ReadInput(path string) (*model.InputArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "artifact: read input %s", path)
	}

	var input model.InputArtifact
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &input); err != nil {
			return nil, eris.Wrapf(err, "artifact: decode yaml input %s", path)
		}
	default:
		if err := json.Unmarshal(data, &input); err != nil {
			return nil, eris.Wrapf(err, "artifact: decode json input %s", path)
		}
	}

	if input.SchemaVersion != model.SchemaVersion {
		return nil, eris.Wrapf(ErrUnsupportedSchema, "got %q, want %q", input.SchemaVersion, model.SchemaVersion)
	}

	return &input, nil
}
