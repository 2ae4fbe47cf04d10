package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
	"github.com/leapstack-labs/sqltree/pkg/format"
	"github.com/leapstack-labs/sqltree/pkg/store/memory"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		build    func(b *ast.Builder) ast.Node
		expected string
	}{
		{
			name: "labeled while",
			build: func(b *ast.Builder) ast.Node {
				return b.While("loop1",
					b.Compare(b.Symbol("x"), ast.OpLT, b.Const(10)),
					b.Block(b.Assign(b.Symbol("x"), b.Func("add", b.Symbol("x"), b.Const(1)))),
				)
			},
			expected: `loop1: WHILE (x < 10)
BEGIN
  x = add(x, 1);
END
`,
		},
		{
			name: "unlabeled while with missing condition",
			build: func(b *ast.Builder) ast.Node {
				return b.While("", nil, b.Block(b.Break("")))
			},
			expected: `WHILE (<missing>)
BEGIN
  BREAK;
END
`,
		},
		{
			name: "if else with compound criteria",
			build: func(b *ast.Builder) ast.Node {
				return b.If(
					b.And(
						b.IsNull(b.Symbol("t.a"), true),
						b.Or(
							b.Compare(b.Symbol("b"), ast.OpEQ, b.Const("it's")),
							b.Not(b.Compare(b.Symbol("c"), ast.OpGE, b.Const(nil))),
						),
					),
					b.Block(b.Return(b.Const(true))),
					b.Block(b.Raise(b.Const("bad"), true)),
				)
			},
			expected: `IF (t.a IS NOT NULL AND (b = 'it''s' OR NOT (c >= NULL)))
BEGIN
  RETURN TRUE;
END
ELSE
BEGIN
  RAISE SQLWARNING 'bad';
END
`,
		},
		{
			name: "cursor loop with declare and leave",
			build: func(b *ast.Builder) ast.Node {
				return b.LabeledBlock("outer",
					b.Declare("integer", b.Symbol("n"), nil),
					b.Loop("l", "c", b.Func("rows"), b.Block(b.Leave("outer"))),
					b.Return(nil),
				)
			},
			expected: `outer: BEGIN
  DECLARE integer n;
  l: LOOP ON (rows()) AS c
  BEGIN
    LEAVE outer;
  END
  RETURN;
END
`,
		},
		{
			name: "expression root",
			build: func(b *ast.Builder) ast.Node {
				return b.Compare(b.Symbol("x"), ast.OpNE, b.Const(2.5))
			},
			expected: "x <> 2.5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ast.NewBuilder(memory.New())
			n := tt.build(b)
			require.NoError(t, b.Err())

			got, err := format.Format(n)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSnapshot(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Equal(t, "<missing>\n", format.Snapshot(nil))
	})

	t.Run("atomic block with exception handler", func(t *testing.T) {
		snap := &ast.Snapshot{
			Kind: core.KindBlock,
			Properties: map[string]any{
				ast.AtomicProp:         true,
				ast.ExceptionGroupProp: "e",
			},
			Slots: []ast.SlotSnapshot{
				{Name: ast.StatementsSlot, Nodes: []*ast.Snapshot{
					{Kind: core.KindBranching, Properties: map[string]any{ast.ModeProp: "CONTINUE"}},
				}},
				{Name: ast.ExceptionStatementsSlot, Nodes: []*ast.Snapshot{
					{Kind: core.KindReturn},
				}},
			},
		}
		assert.Equal(t, `BEGIN ATOMIC
  CONTINUE;
EXCEPTION e
  RETURN;
END
`, format.Snapshot(snap))
	})

	t.Run("while without block", func(t *testing.T) {
		snap := &ast.Snapshot{Kind: core.KindWhile}
		assert.Equal(t, `WHILE (<missing>)
BEGIN
  <missing>
END
`, format.Snapshot(snap))
	})
}
