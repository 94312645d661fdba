package anchor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

const namedDoc = `* Report
Some intro text.
#+NAME: sales
| region | q1 | q2 |
|--------+----+----|
| north  | 10 | 20 |
`

const unnamedDoc = `Intro paragraph.
| a | b |
| 1 | 2 |
Outro.
`

func TestComputeContextNamed(t *testing.T) {
	start := strings.Index(namedDoc, "| region")
	ctx := ComputeContext(namedDoc, start, Options{Width: 10})

	assert.Equal(t, "sales", ctx.DeclaredName)
	assert.Equal(t, "AME: sales\n", namedDoc[start-11:start])
	assert.Equal(t, namedDoc[start-10:start], ctx.BeforeText)
	assert.Equal(t, "| region |", ctx.AfterText)
}

func TestComputeContextUnnamedAndClamped(t *testing.T) {
	start := strings.Index(unnamedDoc, "| a")
	ctx := ComputeContext(unnamedDoc, start, Options{Width: 100})

	assert.Empty(t, ctx.DeclaredName)
	assert.Equal(t, "Intro paragraph.\n", ctx.BeforeText)
	assert.Equal(t, unnamedDoc[start:], ctx.AfterText)
}

func TestComputeContextAtDocumentStart(t *testing.T) {
	doc := "| x |\n"
	ctx := ComputeContext(doc, 0, Options{Width: 4})
	assert.Empty(t, ctx.BeforeText)
	assert.Equal(t, "| x ", ctx.AfterText)
}

func TestComputeContextRuneBoundaries(t *testing.T) {
	doc := "héllo wörld\n| a |\n"
	start := strings.Index(doc, "| a")
	ctx := ComputeContext(doc, start, Options{Width: 6})
	assert.True(t, strings.HasSuffix(doc[:start], ctx.BeforeText))
	assert.LessOrEqual(t, len(ctx.BeforeText), 6)
	for _, r := range ctx.BeforeText {
		assert.NotEqual(t, '�', r)
	}
}

func TestDirectiveCaseInsensitive(t *testing.T) {
	doc := "#+name: totals\n| a |\n"
	ctx := ComputeContext(doc, strings.Index(doc, "|"), Options{})
	assert.Equal(t, "totals", ctx.DeclaredName)
}

func TestFindTableIgnoresAfterText(t *testing.T) {
	stored := types.NewTableHighlights("t1", types.TableContext{DeclaredName: "sales", BeforeText: "x\n", AfterText: "| old |"})
	doc := &types.DocumentHighlights{DocumentID: "d", Tables: []*types.TableHighlights{stored}}

	got := FindTable(doc, types.TableContext{DeclaredName: "sales", BeforeText: "x\n", AfterText: "| new |"})
	require.NotNil(t, got)
	assert.Equal(t, "t1", got.TableID)

	assert.Nil(t, FindTable(doc, types.TableContext{DeclaredName: "other", BeforeText: "x\n"}))
	assert.Nil(t, FindTable(doc, types.TableContext{DeclaredName: "sales", BeforeText: "y\n"}))
	assert.Nil(t, FindTable(nil, stored.Context))
}

func TestLocate(t *testing.T) {
	start := strings.Index(namedDoc, "| region")

	t.Run("by declared name", func(t *testing.T) {
		ctx := types.TableContext{DeclaredName: "sales", BeforeText: "gone"}
		pos, ok := Locate(namedDoc, ctx, Options{})
		require.True(t, ok)
		assert.Equal(t, start, pos)
	})

	t.Run("by before text", func(t *testing.T) {
		ctx := ComputeContext(unnamedDoc, strings.Index(unnamedDoc, "|"), Options{Width: 8})
		edited := "New heading\n" + unnamedDoc
		pos, ok := Locate(edited, ctx, Options{})
		require.True(t, ok)
		assert.Equal(t, strings.Index(edited, "| a"), pos)
	})

	t.Run("falls back to after text", func(t *testing.T) {
		ctx := types.TableContext{BeforeText: "missing", AfterText: "| a | b |"}
		pos, ok := Locate(unnamedDoc, ctx, Options{})
		require.True(t, ok)
		assert.Equal(t, strings.Index(unnamedDoc, "| a"), pos)
	})

	t.Run("not found", func(t *testing.T) {
		ctx := types.TableContext{BeforeText: "nope", AfterText: "nada"}
		_, ok := Locate(unnamedDoc, ctx, Options{})
		assert.False(t, ok)
	})

	t.Run("empty anchors are never found", func(t *testing.T) {
		_, ok := Locate(unnamedDoc, types.TableContext{}, Options{})
		assert.False(t, ok)
	})
}
