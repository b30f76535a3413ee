package export

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/specialistvlad/mpcexport/internal/ctxlog"
	"github.com/specialistvlad/mpcexport/internal/fsutil"
)

// SourceDir is the export subdirectory that receives source templates.
const SourceDir = "src"

// rootFiles are copied to the export root instead of SourceDir.
var rootFiles = map[string]bool{
	"Makefile":         true,
	"instructions.txt": true,
}

// Stage copies the files directly inside each template directory into
// exportDir and returns the destination paths in lexical order. A file
// present in more than one directory is taken from the last one.
func Stage(ctx context.Context, templateDirs []string, exportDir string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	dest := make(map[string]string)
	for _, dir := range templateDirs {
		files, err := fsutil.ListFiles(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to list template directory %s: %w", dir, err)
		}
		for _, src := range files {
			name := filepath.Base(src)
			target := filepath.Join(exportDir, SourceDir, name)
			if rootFiles[name] {
				target = filepath.Join(exportDir, name)
			}
			dest[target] = src
		}
	}

	targets := make([]string, 0, len(dest))
	for target := range dest {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	for _, target := range targets {
		if err := fsutil.CopyFile(dest[target], target); err != nil {
			return nil, fmt.Errorf("failed to stage %s: %w", dest[target], err)
		}
		logger.Debug("Template staged.", "from", dest[target], "to", target)
	}
	return targets, nil
}
