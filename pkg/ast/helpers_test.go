package ast_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqltree/internal/testutil"
	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
	"github.com/leapstack-labs/sqltree/pkg/store/memory"
	"github.com/leapstack-labs/sqltree/pkg/store/sqlite"
)

type storeFactory struct {
	name string
	open func(t *testing.T) core.Store
}

// backends lists every store implementation the AST layer is tested on.
func backends() []storeFactory {
	return []storeFactory{
		{
			name: "memory",
			open: func(t *testing.T) core.Store {
				return memory.New(memory.WithLogger(testutil.NewTestLogger(t)))
			},
		},
		{
			name: "sqlite",
			open: func(t *testing.T) core.Store {
				s, err := sqlite.Open(":memory:", sqlite.WithLogger(testutil.NewTestLogger(t)))
				require.NoError(t, err)
				t.Cleanup(func() { _ = s.Close() })
				return s
			},
		},
	}
}

// forEachBackend runs fn once per store implementation.
func forEachBackend(t *testing.T, fn func(t *testing.T, s core.Store)) {
	for _, f := range backends() {
		t.Run(f.name, func(t *testing.T) {
			fn(t, f.open(t))
		})
	}
}

// condition builds "x < 10".
func condition(t *testing.T, b *ast.Builder) *ast.CompareCriteria {
	t.Helper()
	c := b.Compare(b.Symbol("x"), ast.OpLT, b.Const(10))
	require.NoError(t, b.Err())
	return c
}

// body builds a block holding "x = x + 1".
func body(t *testing.T, b *ast.Builder) *ast.Block {
	t.Helper()
	blk := b.Block(b.Assign(b.Symbol("x"), b.Func("add", b.Symbol("x"), b.Const(1))))
	require.NoError(t, b.Err())
	return blk
}

func mustWhile(t *testing.T, s core.Store, cond ast.Criteria, blk *ast.Block) *ast.WhileStatement {
	t.Helper()
	w, err := ast.NewWhileStatement(s)
	require.NoError(t, err)
	if cond != nil {
		require.NoError(t, w.SetCondition(cond))
	}
	if blk != nil {
		require.NoError(t, w.SetBlock(blk))
	}
	return w
}

func mustClone[T ast.Node](t *testing.T, n T) T {
	t.Helper()
	c, err := ast.Clone(n)
	require.NoError(t, err)
	return c
}

func mustEqual(t *testing.T, a, b ast.Node) bool {
	t.Helper()
	eq, err := ast.Equal(a, b)
	require.NoError(t, err)
	return eq
}

func mustHash(t *testing.T, n ast.Node) uint64 {
	t.Helper()
	h, err := ast.Hash(n)
	require.NoError(t, err)
	return h
}
