package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqltree/internal/testutil"
	"github.com/leapstack-labs/sqltree/pkg/core"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	n := 0
	store, err := Open(":memory:",
		WithLogger(testutil.NewTestLogger(t)),
		WithIDGenerator(func() core.NodeID {
			n++
			return core.NodeID(fmt.Sprintf("n%d", n))
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func mustCreate(t *testing.T, s core.Store, kind core.Kind) core.NodeID {
	t.Helper()
	id, err := s.CreateNode(kind)
	require.NoError(t, err)
	return id
}

func TestStore_OpenMigrates(t *testing.T) {
	store := setupTestStore(t)

	version, err := store.MigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	n, err := store.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestStore_Properties(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"string", "loop1"},
		{"empty string", ""},
		{"bool false", false},
		{"int64", int64(-7)},
		{"float64", 0.25},
		{"strings", []string{"x", "y"}},
		{"empty strings", []string{}},
	}

	store := setupTestStore(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := mustCreate(t, store, core.KindConstant)

			_, ok, err := store.Property(id, "value")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.SetProperty(id, "value", tt.value))
			got, ok, err := store.Property(id, "value")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.value, got)

			require.NoError(t, store.SetProperty(id, "value", nil))
			_, ok, err = store.Property(id, "value")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStore_PropertyErrors(t *testing.T) {
	store := setupTestStore(t)

	_, _, err := store.Property("missing", "label")
	require.ErrorIs(t, err, core.ErrNodeNotFound)

	require.ErrorIs(t, store.SetProperty("missing", "label", "x"), core.ErrNodeNotFound)

	id := mustCreate(t, store, core.KindConstant)
	require.ErrorIs(t, store.SetProperty(id, "value", struct{}{}), core.ErrUnsupportedValue)
}

func TestStore_ChildSlots(t *testing.T) {
	store := setupTestStore(t)
	w := mustCreate(t, store, core.KindWhile)
	b1 := mustCreate(t, store, core.KindBlock)
	b2 := mustCreate(t, store, core.KindBlock)

	require.NoError(t, store.SetChild(w, "block", b1))
	got, err := store.Child(w, "block")
	require.NoError(t, err)
	assert.Equal(t, b1, got)

	parent, slot, err := store.Parent(b1)
	require.NoError(t, err)
	assert.Equal(t, w, parent)
	assert.Equal(t, "block", slot)

	require.NoError(t, store.SetChild(w, "block", b2))
	roots, err := store.Roots()
	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{w, b1}, roots)

	require.ErrorIs(t, store.SetChild(b2, "inner", w), core.ErrCycle)
	require.ErrorIs(t, store.SetChild(b1, "x", b2), core.ErrAlreadyAttached)

	require.NoError(t, store.SetChild(w, "block", ""))
	got, err = store.Child(w, "block")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestStore_ListSlots(t *testing.T) {
	store := setupTestStore(t)
	blk := mustCreate(t, store, core.KindBlock)
	a := mustCreate(t, store, core.KindReturn)
	b := mustCreate(t, store, core.KindReturn)
	c := mustCreate(t, store, core.KindReturn)

	require.NoError(t, store.SetChildren(blk, "statements", []core.NodeID{a, b, c}))
	got, err := store.Children(blk, "statements")
	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{a, b, c}, got)

	require.NoError(t, store.SetChildren(blk, "statements", []core.NodeID{c, a}))
	got, err = store.Children(blk, "statements")
	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{c, a}, got)

	parent, _, err := store.Parent(b)
	require.NoError(t, err)
	assert.True(t, parent.IsZero())

	// A list slot and a single slot with the same name do not mix.
	single, err := store.Child(blk, "statements")
	require.NoError(t, err)
	assert.True(t, single.IsZero())

	require.ErrorIs(t, store.SetChildren(blk, "statements", []core.NodeID{b, b}), core.ErrAlreadyAttached)
}

func TestStore_DeleteSubtree(t *testing.T) {
	store := setupTestStore(t)
	w := mustCreate(t, store, core.KindWhile)
	blk := mustCreate(t, store, core.KindBlock)
	ret := mustCreate(t, store, core.KindReturn)
	require.NoError(t, store.SetProperty(ret, "label", "r"))
	require.NoError(t, store.SetChildren(blk, "statements", []core.NodeID{ret}))
	require.NoError(t, store.SetChild(w, "block", blk))

	require.NoError(t, store.DeleteNode(blk))

	n, err := store.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := store.Child(w, "block")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = store.Kind(ret)
	require.ErrorIs(t, err, core.ErrNodeNotFound)
	require.ErrorIs(t, store.DeleteNode(blk), core.ErrNodeNotFound)
}

func TestStore_Update(t *testing.T) {
	tests := []struct {
		name      string
		fail      bool
		wantBlock bool
	}{
		{name: "commit", fail: false, wantBlock: true},
		{name: "rollback", fail: true, wantBlock: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupTestStore(t)
			w := mustCreate(t, store, core.KindWhile)

			err := store.Update(context.Background(), func(tx core.Store) error {
				b, err := tx.CreateNode(core.KindBlock)
				if err != nil {
					return err
				}
				if err := tx.SetChild(w, "block", b); err != nil {
					return err
				}
				if tt.fail {
					return assert.AnError
				}
				return nil
			})
			if tt.fail {
				require.ErrorIs(t, err, assert.AnError)
			} else {
				require.NoError(t, err)
			}

			got, err := store.Child(w, "block")
			require.NoError(t, err)
			assert.Equal(t, tt.wantBlock, !got.IsZero())
		})
	}
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.db")

	store, err := Open(path)
	require.NoError(t, err)
	w := mustCreate(t, store, core.KindWhile)
	require.NoError(t, store.SetProperty(w, "label", "loop1"))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	roots, err := store.Roots()
	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{w}, roots)

	label, ok, err := store.Property(w, "label")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "loop1", label)
}

func TestStore_DatabaseErrors(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		run       func(s *Store) error
		wantErr   error
		errMsg    string
	}{
		{
			name: "create node fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO nodes").WillReturnError(assert.AnError)
			},
			run: func(s *Store) error {
				_, err := s.CreateNode(core.KindWhile)
				return err
			},
			wantErr: assert.AnError,
			errMsg:  "failed to create node",
		},
		{
			name: "kind of unknown node",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT kind FROM nodes").
					WithArgs("x").
					WillReturnRows(sqlmock.NewRows([]string{"kind"}))
			},
			run: func(s *Store) error {
				_, err := s.Kind("x")
				return err
			},
			wantErr: core.ErrNodeNotFound,
		},
		{
			name: "set property rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT 1 FROM nodes").
					WithArgs("x").
					WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
				mock.ExpectExec("INSERT INTO properties").WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			run: func(s *Store) error {
				return s.SetProperty("x", "label", "loop1")
			},
			wantErr: assert.AnError,
			errMsg:  "failed to set property",
		},
		{
			name: "begin fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(assert.AnError)
			},
			run: func(s *Store) error {
				return s.DeleteNode("x")
			},
			wantErr: assert.AnError,
			errMsg:  "failed to begin transaction",
		},
		{
			name: "commit fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(assert.AnError)
			},
			run: func(s *Store) error {
				return s.Update(context.Background(), func(core.Store) error { return nil })
			},
			wantErr: assert.AnError,
			errMsg:  "failed to commit",
		},
		{
			name: "roots query fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT id FROM nodes WHERE parent_id IS NULL").WillReturnError(assert.AnError)
			},
			run: func(s *Store) error {
				_, err := s.Roots()
				return err
			},
			wantErr: assert.AnError,
			errMsg:  "failed to list roots",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setupMock(mock)
			store := New(db, WithLogger(testutil.NewTestLogger(t)))

			err = tt.run(store)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
