package yamlload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/specialistvlad/mpcexport/internal/ctxlog"
	"github.com/specialistvlad/mpcexport/internal/fsutil"
	"github.com/specialistvlad/mpcexport/internal/predicate"
	"github.com/specialistvlad/mpcexport/internal/problem"
	"gopkg.in/yaml.v3"
)

// Extensions are the file extensions the loader picks up.
var Extensions = []string{".yaml", ".yml"}

// Loader is the YAML implementation of problem.Loader.
type Loader struct{}

// NewLoader creates a new YAML problem loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ problem.Loader = (*Loader)(nil)

// Load decodes every YAML file under paths, in lexical order, and merges
// them into one validated Problem.
func (l *Loader) Load(ctx context.Context, paths ...string) (*problem.Problem, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	seen := make(map[string]struct{})
	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, Extensions...)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if _, ok := seen[f]; !ok {
				seen[f] = struct{}{}
				files = append(files, f)
			}
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no YAML files found in %v", paths)
	}
	sort.Strings(files)

	p := &problem.Problem{Shutdown: make(map[string]*predicate.Predicate)}
	settingsFrom := ""
	for _, file := range files {
		doc, err := decodeFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
		}
		if doc.Problem != nil {
			if settingsFrom != "" {
				return nil, fmt.Errorf("duplicate problem settings in %s, already declared in %s", file, settingsFrom)
			}
			settingsFrom = file
			applySettings(p, doc.Problem)
		}
		for _, gd := range doc.Groups {
			g, err := translateGroup(ctx, p, gd)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			p.Groups = append(p.Groups, g)
		}
		for _, sd := range doc.Substitutes {
			p.Substitutes = append(p.Substitutes, problem.Substitute{Group: sd.Group, Name: sd.Name})
		}
	}

	p.ApplyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	logger.Info("Problem loaded.", "format", "yaml", "files", len(files), "groups", len(p.Groups), "substitutes", len(p.Substitutes))
	return p, nil
}

// decodeFile decodes a single-document file, rejecting unknown fields.
func decodeFile(path string) (*document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); err == nil {
		return nil, fmt.Errorf("multiple YAML documents are not supported")
	} else if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed after first YAML document: %w", err)
	}
	return &doc, nil
}

func applySettings(p *problem.Problem, s *settings) {
	if s.NDim != nil {
		p.NDim = *s.NDim
	}
	if s.Tolerance != nil {
		p.Tolerance = *s.Tolerance
	}
	if s.LinearSolver != nil {
		p.LinearSolver = *s.LinearSolver
	}
	if s.HorizonTime != nil {
		p.HorizonTime = *s.HorizonTime
	}
	if s.KnotIntervals != nil {
		p.KnotIntervals = *s.KnotIntervals
	}
	if s.BasisLength != nil {
		p.BasisLength = *s.BasisLength
	}
	if s.Point2Point != nil {
		p.Point2Point = problem.Point2PointKind(*s.Point2Point)
	}
	if s.VehicleLabel != nil {
		p.VehicleLabel = *s.VehicleLabel
	}
	if s.P2PLabel != nil {
		p.P2PLabel = *s.P2PLabel
	}
	if s.ObstacleLabels != nil {
		p.ObstacleLabels = s.ObstacleLabels
	}
}

func translateGroup(ctx context.Context, p *problem.Problem, gd groupDoc) (*problem.Group, error) {
	g := &problem.Group{
		Label:   gd.Label,
		Splines: make(map[string]*problem.SplinePrimitive),
	}
	for _, v := range gd.Variables {
		g.Variables = append(g.Variables, shape(v.Name, v.Rows, v.Cols))
	}
	for _, v := range gd.Parameters {
		g.Parameters = append(g.Parameters, shape(v.Name, v.Rows, v.Cols))
	}
	for _, cd := range gd.Constraints {
		g.Constraints = append(g.Constraints, &problem.Constraint{
			Block: *shape(cd.Name, cd.Rows, cd.Cols),
			Lower: floats(cd.Lower),
			Upper: floats(cd.Upper),
		})
		if cd.Shutdown == "" {
			continue
		}
		pred, err := predicate.Parse(cd.Shutdown)
		if err != nil {
			return nil, fmt.Errorf("constraint %q in group %q: shutdown: %w", cd.Name, gd.Label, err)
		}
		p.Shutdown[problem.QualifiedName(gd.Label, cd.Name)] = pred
		ctxlog.FromContext(ctx).Debug("Shutdown predicate registered.", "group", gd.Label, "constraint", cd.Name, "predicate", pred.String())
	}
	for _, sd := range gd.Splines {
		if _, dup := g.Splines[sd.Name]; dup {
			return nil, fmt.Errorf("duplicate spline %q in group %q", sd.Name, gd.Label)
		}
		g.Splines[sd.Name] = &problem.SplinePrimitive{BasisLength: sd.BasisLength, Transform: sd.Transform}
	}
	return g, nil
}

func shape(name string, rows, cols *int) *problem.Block {
	b := &problem.Block{Name: name, Rows: 1, Cols: 1}
	if rows != nil {
		b.Rows = *rows
	}
	if cols != nil {
		b.Cols = *cols
	}
	return b
}
