// Package hclutil holds small helpers shared by code that reads HCL bodies.
package hclutil

import (
	"github.com/hashicorp/hcl/v2"
)

// FindUniqueBlock returns the block of the given type, or nil if there is
// none. A second block of that type is reported as a diagnostic.
func FindUniqueBlock(blocks hcl.Blocks, blockType string) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type != blockType {
			continue
		}
		if found != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate \"" + blockType + "\" block",
				Detail:   "Only one \"" + blockType + "\" block is allowed; the first was declared at " + found.DefRange.String() + ".",
				Subject:  block.DefRange.Ptr(),
			})
			continue
		}
		found = block
	}
	return found, diags
}
