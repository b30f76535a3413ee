package codegen

import (
	"fmt"
	"sort"
	"strings"
)

// Artifact is one named value spliced into the runtime templates.
type Artifact interface {
	Render() string
}

// Fragment is a sequence of statements rendered at function-body depth.
type Fragment []Stmt

// Render prints the fragment with one leading tab per nesting level,
// starting at one.
func (f Fragment) Render() string {
	w := &writer{depth: 1}
	for _, s := range f {
		s.writeStmt(w)
	}
	return w.sb.String()
}

// Define is a single preprocessor constant.
type Define struct {
	Name  string
	Value Expr
}

// Defines is an ordered list of preprocessor constants.
type Defines []Define

// Render prints one #define per line in list order.
func (d Defines) Render() string {
	var sb strings.Builder
	for _, def := range d {
		fmt.Fprintf(&sb, "#define %s %s\n", def.Name, String(def.Value))
	}
	return sb.String()
}

// Lookup returns the value of the named define.
func (d Defines) Lookup(name string) (Expr, bool) {
	for _, def := range d {
		if def.Name == name {
			return def.Value, true
		}
	}
	return nil, false
}

// Text is a value echoed verbatim.
type Text string

// Render returns the text unchanged.
func (t Text) Render() string {
	return string(t)
}

// Artifacts maps template keys to artifacts.
type Artifacts map[string]Artifact

// Merge copies every artifact of other into a, failing on duplicate keys.
func (a Artifacts) Merge(other Artifacts) error {
	for k, v := range other {
		if _, dup := a[k]; dup {
			return fmt.Errorf("duplicate artifact %q", k)
		}
		a[k] = v
	}
	return nil
}

// Keys returns the artifact keys in sorted order.
func (a Artifacts) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Render prints every artifact.
func (a Artifacts) Render() map[string]string {
	out := make(map[string]string, len(a))
	for k, v := range a {
		out[k] = v.Render()
	}
	return out
}
