package render

import (
	"fmt"
	"os"
)

// copyStrategy copies one file out of the palette artifact bundle over the
// destination, replacing it entirely.
type copyStrategy struct{}

func (copyStrategy) render(t Target, rc Context) error {
	src := rc.Artifact.File(t.Source)
	content, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read artifact file %s: %w", src, err)
	}

	return writeFileAtomic(t.Destination, content, 0o644)
}
