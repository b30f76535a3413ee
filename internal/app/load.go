package app

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/specialistvlad/mpcexport/internal/fsutil"
	"github.com/specialistvlad/mpcexport/internal/hcl"
	"github.com/specialistvlad/mpcexport/internal/problem"
	"github.com/specialistvlad/mpcexport/internal/yamlload"
)

// SelectLoader picks the loader for a problem path by extension. A
// directory is read as HCL when it contains any .hcl file and as YAML
// otherwise.
func SelectLoader(path string) (problem.Loader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing problem path %s: %w", path, err)
	}
	if !info.IsDir() {
		ext := filepath.Ext(path)
		switch {
		case ext == hcl.Extension:
			return hcl.NewLoader(), nil
		case slices.Contains(yamlload.Extensions, ext):
			return yamlload.NewLoader(), nil
		default:
			return nil, fmt.Errorf("unsupported problem file %s: want %s, %v", path, hcl.Extension, yamlload.Extensions)
		}
	}

	hclFiles, err := fsutil.FindFilesByExtension(path, hcl.Extension)
	if err != nil {
		return nil, err
	}
	if len(hclFiles) > 0 {
		return hcl.NewLoader(), nil
	}
	return yamlload.NewLoader(), nil
}
