package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/mpcexport/internal/layout"
	"github.com/zclconf/go-cty/cty"
)

// LayoutReport renders the offset tables as an HCL document with one
// top-level block per collection and one labelled block per entry.
func LayoutReport(tables *layout.Tables) []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()
	for i, kind := range []layout.Kind{layout.Variables, layout.Parameters, layout.Constraints} {
		if i > 0 {
			root.AppendNewline()
		}
		tbl := tables.Of(kind)
		coll := root.AppendNewBlock(kind.String(), nil).Body()
		coll.SetAttributeValue("size", cty.NumberIntVal(int64(tbl.Size())))
		for _, e := range tbl.Entries() {
			b := coll.AppendNewBlock("block", []string{e.GroupLabel, e.Name}).Body()
			b.SetAttributeValue("start", cty.NumberIntVal(int64(e.Start)))
			b.SetAttributeValue("end", cty.NumberIntVal(int64(e.End())))
			b.SetAttributeValue("rows", cty.NumberIntVal(int64(e.Rows)))
			b.SetAttributeValue("cols", cty.NumberIntVal(int64(e.Cols)))
		}
	}
	return f.Bytes()
}

// WriteLayoutReport writes LayoutReport to path.
func WriteLayoutReport(path string, tables *layout.Tables) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(path, LayoutReport(tables), 0o644); err != nil {
		return fmt.Errorf("failed to write layout report: %w", err)
	}
	return nil
}
