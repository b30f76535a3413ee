package hclutil

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *hcl.File {
	t.Helper()
	f, diags := hclsyntax.ParseConfig([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	return f
}

func TestFindUniqueBlock(t *testing.T) {
	schema := &hcl.BodySchema{Blocks: []hcl.BlockHeaderSchema{{Type: "problem"}, {Type: "group", LabelNames: []string{"label"}}}}

	t.Run("single", func(t *testing.T) {
		content, diags := parse(t, "problem {}\ngroup \"a\" {}\n").Body.Content(schema)
		require.False(t, diags.HasErrors())
		b, diags := FindUniqueBlock(content.Blocks, "problem")
		require.False(t, diags.HasErrors())
		require.NotNil(t, b)
		assert.Equal(t, 1, b.DefRange.Start.Line)
	})

	t.Run("missing", func(t *testing.T) {
		content, _ := parse(t, "group \"a\" {}\n").Body.Content(schema)
		b, diags := FindUniqueBlock(content.Blocks, "problem")
		assert.False(t, diags.HasErrors())
		assert.Nil(t, b)
	})

	t.Run("duplicate", func(t *testing.T) {
		content, _ := parse(t, "problem {}\nproblem {}\n").Body.Content(schema)
		b, diags := FindUniqueBlock(content.Blocks, "problem")
		require.True(t, diags.HasErrors())
		assert.Equal(t, 1, b.DefRange.Start.Line)
		assert.Equal(t, 2, diags[0].Subject.Start.Line)
		assert.Contains(t, diags.Error(), `Duplicate "problem" block`)
	})
}

func TestIsExprDefined(t *testing.T) {
	var target struct {
		Shutdown hcl.Expression `hcl:"shutdown,optional"`
		Rows     *int           `hcl:"rows,optional"`
	}

	diags := gohcl.DecodeBody(parse(t, "shutdown = t > 1\n").Body, nil, &target)
	require.False(t, diags.HasErrors(), diags.Error())
	assert.True(t, IsExprDefined(context.Background(), target.Shutdown, "shutdown"))

	diags = gohcl.DecodeBody(parse(t, "rows = 2\n").Body, nil, &target)
	require.False(t, diags.HasErrors(), diags.Error())
	assert.False(t, IsExprDefined(context.Background(), target.Shutdown, "shutdown"))
	assert.False(t, IsExprDefined(context.Background(), nil, "shutdown"))
}
