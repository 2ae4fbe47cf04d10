package ast_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqltree/pkg/ast"
	"github.com/leapstack-labs/sqltree/pkg/core"
	"github.com/leapstack-labs/sqltree/pkg/store/memory"
)

// recorder records every node it is handed, in order. skip prunes the
// subtree of nodes of that kind during PreOrder.
type recorder struct {
	calls []ast.Node
	skip  core.Kind
}

func (r *recorder) record(n ast.Node) error {
	r.calls = append(r.calls, n)
	if n.Kind() == r.skip {
		return ast.SkipChildren
	}
	return nil
}

func (r *recorder) kinds() []core.Kind {
	out := make([]core.Kind, len(r.calls))
	for i, n := range r.calls {
		out[i] = n.Kind()
	}
	return out
}

func (r *recorder) VisitBlock(n *ast.Block) error                       { return r.record(n) }
func (r *recorder) VisitWhile(n *ast.WhileStatement) error              { return r.record(n) }
func (r *recorder) VisitLoop(n *ast.LoopStatement) error                { return r.record(n) }
func (r *recorder) VisitIf(n *ast.IfStatement) error                    { return r.record(n) }
func (r *recorder) VisitBranching(n *ast.BranchingStatement) error      { return r.record(n) }
func (r *recorder) VisitAssignment(n *ast.AssignmentStatement) error    { return r.record(n) }
func (r *recorder) VisitDeclare(n *ast.DeclareStatement) error          { return r.record(n) }
func (r *recorder) VisitRaise(n *ast.RaiseStatement) error              { return r.record(n) }
func (r *recorder) VisitReturn(n *ast.ReturnStatement) error            { return r.record(n) }
func (r *recorder) VisitCompareCriteria(n *ast.CompareCriteria) error   { return r.record(n) }
func (r *recorder) VisitCompoundCriteria(n *ast.CompoundCriteria) error { return r.record(n) }
func (r *recorder) VisitNotCriteria(n *ast.NotCriteria) error           { return r.record(n) }
func (r *recorder) VisitIsNullCriteria(n *ast.IsNullCriteria) error     { return r.record(n) }
func (r *recorder) VisitConstant(n *ast.Constant) error                 { return r.record(n) }
func (r *recorder) VisitElementSymbol(n *ast.ElementSymbol) error       { return r.record(n) }
func (r *recorder) VisitFunction(n *ast.Function) error                 { return r.record(n) }

func TestAcceptVisitor_DispatchesOnce(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s core.Store) {
		b := ast.NewBuilder(s)
		w := mustWhile(t, s, condition(t, b), body(t, b))

		rec := &recorder{}
		require.NoError(t, w.AcceptVisitor(rec))

		require.Len(t, rec.calls, 1)
		got, ok := rec.calls[0].(*ast.WhileStatement)
		require.True(t, ok)
		assert.Equal(t, w.ID(), got.ID())
	})
}

// whileOnly embeds NoopVisitor and handles a single variant.
type whileOnly struct {
	ast.NoopVisitor
	seen int
}

func (v *whileOnly) VisitWhile(*ast.WhileStatement) error {
	v.seen++
	return nil
}

func TestNoopVisitor_Embedding(t *testing.T) {
	s := memory.New()
	b := ast.NewBuilder(s)
	root := b.Block(mustWhile(t, s, condition(t, b), b.Block(mustWhile(t, s, nil, nil))))
	require.NoError(t, b.Err())

	v := &whileOnly{}
	require.NoError(t, ast.PreOrder(root, v))
	assert.Equal(t, 2, v.seen)
}

func TestPreOrder(t *testing.T) {
	s := memory.New()
	b := ast.NewBuilder(s)
	w := mustWhile(t, s, condition(t, b), body(t, b))

	tests := []struct {
		name string
		skip core.Kind
		want []core.Kind
	}{
		{
			name: "full walk in schema order",
			want: []core.Kind{
				core.KindWhile,
				core.KindCompareCriteria, core.KindElementSymbol, core.KindConstant,
				core.KindBlock,
				core.KindAssignment, core.KindElementSymbol,
				core.KindFunction, core.KindElementSymbol, core.KindConstant,
			},
		},
		{
			name: "skip condition subtree",
			skip: core.KindCompareCriteria,
			want: []core.Kind{
				core.KindWhile,
				core.KindCompareCriteria,
				core.KindBlock,
				core.KindAssignment, core.KindElementSymbol,
				core.KindFunction, core.KindElementSymbol, core.KindConstant,
			},
		},
		{
			name: "skip at root",
			skip: core.KindWhile,
			want: []core.Kind{core.KindWhile},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{skip: tt.skip}
			require.NoError(t, ast.PreOrder(w, rec))
			assert.Equal(t, tt.want, rec.kinds())
		})
	}
}

func TestPostOrder(t *testing.T) {
	s := memory.New()
	b := ast.NewBuilder(s)
	n := b.Not(condition(t, b))
	require.NoError(t, b.Err())

	rec := &recorder{}
	require.NoError(t, ast.PostOrder(n, rec))
	assert.Equal(t, []core.Kind{
		core.KindElementSymbol, core.KindConstant, core.KindCompareCriteria, core.KindNotCriteria,
	}, rec.kinds())
}

type failing struct {
	ast.NoopVisitor
}

func (failing) VisitConstant(*ast.Constant) error { return assert.AnError }

func TestPreOrder_StopsOnError(t *testing.T) {
	s := memory.New()
	b := ast.NewBuilder(s)
	w := mustWhile(t, s, condition(t, b), body(t, b))

	err := ast.PreOrder(w, failing{})
	require.ErrorIs(t, err, assert.AnError)
}

func TestInspect(t *testing.T) {
	s := memory.New()
	b := ast.NewBuilder(s)
	w := mustWhile(t, s, condition(t, b), body(t, b))

	var kinds []core.Kind
	err := ast.Inspect(w, func(n ast.Node) (bool, error) {
		kinds = append(kinds, n.Kind())
		return n.Kind() != core.KindBlock, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []core.Kind{
		core.KindWhile, core.KindCompareCriteria, core.KindElementSymbol, core.KindConstant, core.KindBlock,
	}, kinds)

	stop := errors.New("stop")
	err = ast.Inspect(w, func(ast.Node) (bool, error) { return false, stop })
	require.ErrorIs(t, err, stop)
}

func TestCountKinds(t *testing.T) {
	s := memory.New()
	b := ast.NewBuilder(s)
	w := mustWhile(t, s, condition(t, b), body(t, b))

	counts, err := ast.CountKinds(w)
	require.NoError(t, err)
	assert.Equal(t, map[core.Kind]int{
		core.KindWhile:           1,
		core.KindCompareCriteria: 1,
		core.KindElementSymbol:   3,
		core.KindConstant:        2,
		core.KindBlock:           1,
		core.KindAssignment:      1,
		core.KindFunction:        1,
	}, counts)
}
