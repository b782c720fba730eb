package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/offerline/selection-cli/internal/model"
)

// WriteOutput writes the output artifact to path as a single atomic
// operation: encode to a temp file in the target directory, fsync, then
// rename over the destination. A crash mid-write leaves either the previous
// file or nothing, never a partial artifact.
func WriteOutput(path string, a *model.OutputArtifact) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".artifact-*.json")
	if err != nil {
		return eris.Wrapf(err, "artifact: create temp file in %s", dir)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()        //nolint:errcheck
		os.Remove(tmpName) //nolint:errcheck
	}

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		cleanup()
		return eris.Wrap(err, "artifact: encode output")
	}

	if err := tmp.Sync(); err != nil {
		cleanup()
		return eris.Wrap(err, "artifact: sync output")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) //nolint:errcheck
		return eris.Wrap(err, "artifact: close temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName) //nolint:errcheck
		return eris.Wrapf(err, "artifact: rename into place %s", path)
	}
	return nil
}
