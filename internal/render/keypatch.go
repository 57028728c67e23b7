package render

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/ShyamendraHazra/home-config/internal/palette"
)

// ErrKeyNotFound indicates an expected Key= line was absent from a key-patch
// destination. Missing keys are logged and skipped; the patch continues for
// the remaining keys rather than aborting the target.
var ErrKeyNotFound = errors.New("key not found")

// keyPatchStrategy rewrites recognised Key=value lines in an existing
// destination file. Every line that does not match a configured key is
// preserved byte for byte.
type keyPatchStrategy struct {
	logger hclog.Logger
}

func (s *keyPatchStrategy) render(t Target, rc Context) error {
	data, err := os.ReadFile(t.Destination)
	if err != nil {
		return fmt.Errorf("failed to read destination %s: %w", t.Destination, err)
	}

	patched, missing, err := patchKeys(string(data), t.Keys, rc.Artifact.Palette)
	if err != nil {
		return err
	}

	for _, key := range missing {
		s.logger.Warn("expected key line absent, skipping",
			"target", t.Name, "key", key, "error", ErrKeyNotFound)
	}

	return writeFileAtomic(t.Destination, []byte(patched), 0o644)
}

// patchKeys replaces every line matching Key=... for the configured keys with
// Key=<decimal triplet> and returns the patched content plus the keys that
// had no matching line. Keys match case-insensitively: the config loader
// lower-cases map keys read from a file, and the destination's casing is the
// application's to choose. The file's spelling is kept on the rewritten
// line, so patching the same palette twice is idempotent.
func patchKeys(content string, keys map[string]string, pal *palette.Palette) (string, []string, error) {
	values := make(map[string]string, len(keys))
	spelling := make(map[string]string, len(keys))
	for key, ref := range keys {
		c, err := resolveSlotRef(pal, ref)
		if err != nil {
			return "", nil, fmt.Errorf("key %s: %w", key, err)
		}
		folded := strings.ToLower(key)
		values[folded] = c.Decimal()
		spelling[folded] = key
	}

	seen := make(map[string]bool, len(keys))
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		name, _, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		folded := strings.ToLower(name)
		if value, ok := values[folded]; ok {
			lines[i] = name + "=" + value
			seen[folded] = true
		}
	}

	var missing []string
	for folded, key := range spelling {
		if !seen[folded] {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)

	return strings.Join(lines, "\n"), missing, nil
}

// resolveSlotRef resolves a palette slot reference: "background",
// "foreground", or "colorN" with N in 0-15.
func resolveSlotRef(pal *palette.Palette, ref string) (palette.RGB, error) {
	switch ref {
	case "background":
		return pal.Background(), nil
	case "foreground":
		return pal.Foreground(), nil
	}

	var index int
	if _, err := fmt.Sscanf(ref, "color%d", &index); err != nil {
		return palette.RGB{}, fmt.Errorf("unknown slot reference %q", ref)
	}

	return pal.Slot(index)
}
