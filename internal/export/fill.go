package export

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/specialistvlad/mpcexport/internal/ctxlog"
)

// Placeholder returns the template marker for an artifact key.
func Placeholder(key string) string {
	return "@" + key + "@"
}

// Fill replaces every @KEY@ marker in the given files with the artifact
// text for KEY. Replacement text is inserted verbatim and is not scanned
// for further markers. Markers without an artifact are left in place.
func Fill(ctx context.Context, files []string, artifacts map[string]string) error {
	logger := ctxlog.FromContext(ctx)

	keys := make([]string, 0, len(artifacts))
	for k := range artifacts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, Placeholder(k), artifacts[k])
	}
	r := strings.NewReplacer(pairs...)

	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			return fmt.Errorf("failed to fill %s: %w", file, err)
		}
		body, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to fill %s: %w", file, err)
		}
		filled := r.Replace(string(body))
		if filled == string(body) {
			continue
		}
		if err := os.WriteFile(file, []byte(filled), info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to fill %s: %w", file, err)
		}
		logger.Debug("Template filled.", "file", file)
	}
	return nil
}
