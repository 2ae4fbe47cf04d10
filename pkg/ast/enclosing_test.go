package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
	"github.com/leapstack-labs/sqltree/pkg/store/memory"
)

func TestEnclosing(t *testing.T) {
	s := memory.New()
	b := ast.NewBuilder(s)
	ret := b.Return(nil)
	inner := b.Block(ret)
	w := mustWhile(t, s, nil, inner)
	outer := b.LabeledBlock("main", w)
	require.NoError(t, b.Err())

	gotWhile, ok, err := ast.Enclosing[*ast.WhileStatement](ret)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, w.ID(), gotWhile.ID())

	gotBlock, ok, err := ast.Enclosing[*ast.Block](ret)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, inner.ID(), gotBlock.ID(), "nearest block wins")

	_, ok, err = ast.Enclosing[*ast.LoopStatement](ret)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = ast.Enclosing[*ast.Block](outer)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveBranchTarget(t *testing.T) {
	tests := []struct {
		name    string
		build   func(b *ast.Builder, br *ast.BranchingStatement) ast.Node
		branch  func(b *ast.Builder) *ast.BranchingStatement
		want    core.Kind
		wantLbl string
		wantErr error
	}{
		{
			name:   "unlabeled break binds innermost loop",
			branch: func(b *ast.Builder) *ast.BranchingStatement { return b.Break("") },
			build: func(b *ast.Builder, br *ast.BranchingStatement) ast.Node {
				inner := b.Loop("inner", "row", b.Symbol("q"), b.Block(br))
				return b.While("outer", b.IsNull(b.Symbol("x"), false), b.LabeledBlock("body", inner))
			},
			want:    core.KindLoop,
			wantLbl: "inner",
		},
		{
			name:   "unlabeled continue skips blocks",
			branch: func(b *ast.Builder) *ast.BranchingStatement { return b.Continue("") },
			build: func(b *ast.Builder, br *ast.BranchingStatement) ast.Node {
				return b.While("w", b.IsNull(b.Symbol("x"), false), b.LabeledBlock("blk", br))
			},
			want:    core.KindWhile,
			wantLbl: "w",
		},
		{
			name:   "labeled break targets outer loop",
			branch: func(b *ast.Builder) *ast.BranchingStatement { return b.Break("OUTER") },
			build: func(b *ast.Builder, br *ast.BranchingStatement) ast.Node {
				inner := b.While("inner", b.IsNull(b.Symbol("x"), false), b.Block(br))
				return b.While("outer", b.IsNull(b.Symbol("y"), false), b.Block(inner))
			},
			want:    core.KindWhile,
			wantLbl: "outer",
		},
		{
			name:   "leave targets labeled block",
			branch: func(b *ast.Builder) *ast.BranchingStatement { return b.Leave("main") },
			build: func(b *ast.Builder, br *ast.BranchingStatement) ast.Node {
				return b.LabeledBlock("main", b.If(b.IsNull(b.Symbol("x"), false), b.Block(br), nil))
			},
			want:    core.KindBlock,
			wantLbl: "main",
		},
		{
			name:   "leave without label",
			branch: func(b *ast.Builder) *ast.BranchingStatement { return b.Leave("") },
			build: func(b *ast.Builder, br *ast.BranchingStatement) ast.Node {
				return b.LabeledBlock("main", br)
			},
			wantErr: ast.ErrUnresolvedLabel,
		},
		{
			name:   "unknown label",
			branch: func(b *ast.Builder) *ast.BranchingStatement { return b.Break("nope") },
			build: func(b *ast.Builder, br *ast.BranchingStatement) ast.Node {
				return b.While("w", b.IsNull(b.Symbol("x"), false), b.Block(br))
			},
			wantErr: ast.ErrUnresolvedLabel,
		},
		{
			name:   "break outside loop",
			branch: func(b *ast.Builder) *ast.BranchingStatement { return b.Break("") },
			build: func(b *ast.Builder, br *ast.BranchingStatement) ast.Node {
				return b.Block(br)
			},
			wantErr: ast.ErrUnresolvedLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ast.NewBuilder(memory.New())
			br := tt.branch(b)
			tt.build(b, br)
			require.NoError(t, b.Err())

			target, err := ast.ResolveBranchTarget(br)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, target.Kind())
			label, err := target.Label()
			require.NoError(t, err)
			assert.Equal(t, tt.wantLbl, label)
		})
	}
}
