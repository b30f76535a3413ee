package hcl

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/mpcexport/internal/ctxlog"
	"github.com/specialistvlad/mpcexport/internal/fsutil"
	"github.com/specialistvlad/mpcexport/internal/hclutil"
	"github.com/specialistvlad/mpcexport/internal/predicate"
	"github.com/specialistvlad/mpcexport/internal/problem"
)

// Extension is the file extension the loader picks up.
const Extension = ".hcl"

// Loader is the HCL implementation of problem.Loader.
type Loader struct{}

// NewLoader creates a new HCL problem loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ problem.Loader = (*Loader)(nil)

// rootSchema is used only to locate `problem` blocks for duplicate
// detection; full decoding is done by gohcl.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{{Type: "problem"}},
}

// Load parses every .hcl file under paths, in lexical order, and merges
// them into one validated Problem.
func (l *Loader) Load(ctx context.Context, paths ...string) (*problem.Problem, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found in %v", Extension, paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	p := &problem.Problem{Shutdown: make(map[string]*predicate.Predicate)}
	parser := hclparse.NewParser()
	var settingsFrom *hcl.Block

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		content, _, diags := hclFile.Body.PartialContent(rootSchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to read HCL file %s: %w", file, diags)
		}
		var blocks hcl.Blocks
		if settingsFrom != nil {
			blocks = append(blocks, settingsFrom)
		}
		found, diags := hclutil.FindUniqueBlock(append(blocks, content.Blocks...), "problem")
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		settingsFrom = found

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, pb := range root.Problems {
			translateSettings(p, pb)
		}
		for _, gb := range root.Groups {
			g, err := translateGroup(ctx, p, gb, hclFile.Bytes)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			p.Groups = append(p.Groups, g)
		}
		for _, sb := range root.Substitutes {
			p.Substitutes = append(p.Substitutes, problem.Substitute{Group: sb.Group, Name: sb.Name})
		}
	}

	p.ApplyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	logger.Info("Problem loaded.", "format", "hcl", "files", len(files), "groups", len(p.Groups), "substitutes", len(p.Substitutes))
	return p, nil
}

// findAllHCLFiles expands every path into its .hcl files and returns them
// deduplicated in lexical order. A path that does not exist is an error.
func findAllHCLFiles(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var all []string
	for _, path := range paths {
		files, err := fsutil.FindFilesByExtension(path, Extension)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			all = append(all, f)
		}
	}
	sort.Strings(all)
	return all, nil
}
