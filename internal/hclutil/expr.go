package hclutil

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/mpcexport/internal/ctxlog"
)

// IsExprDefined reports whether an optional attribute was written in the
// source. gohcl fills omitted optional expression fields with a zero-width
// placeholder, so a nil check is not enough.
func IsExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	rng := expr.Range()
	defined := rng.End.Byte > rng.Start.Byte
	ctxlog.FromContext(ctx).Debug("Checked optional HCL attribute.",
		"attribute", attrName,
		"hcl_range", rng.String(),
		"is_defined", defined,
	)
	return defined
}
