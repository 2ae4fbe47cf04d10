package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/leapstack-labs/sqltree/pkg/core"
)

// Store is an in-memory core.Store.
type Store struct {
	mu     sync.RWMutex
	g      *graph
	logger *slog.Logger
}

var (
	_ core.Store      = (*Store)(nil)
	_ core.Transactor = (*Store)(nil)
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDGenerator replaces the default UUID generator. Tests use it for
// predictable ids.
func WithIDGenerator(fn func() core.NodeID) Option {
	return func(s *Store) {
		if fn != nil {
			s.g.newID = fn
		}
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		g: &graph{
			nodes: make(map[core.NodeID]*node),
			newID: func() core.NodeID { return core.NodeID(uuid.NewString()) },
		},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of live nodes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.g.nodes)
}

// Update runs fn as one unit of work. Other callers see either none or all of
// its writes; if fn fails the store is restored to its prior state. The tx
// store, and node handles bound to it, stop working once fn returns: later
// calls fail with ErrTxDone.
func (s *Store) Update(ctx context.Context, fn func(tx core.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	backup := s.g.clone()
	t := &tx{g: s.g}
	err := fn(t)
	t.done = true
	if err != nil {
		*s.g = *backup
		s.logger.Debug("rolled back update", "error", err)
		return err
	}
	return nil
}

// CreateNode implements core.Store.
func (s *Store) CreateNode(kind core.Kind) (core.NodeID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.g.CreateNode(kind)
	if err == nil {
		s.logger.Debug("created node", "id", id, "kind", kind)
	}
	return id, err
}

// Kind implements core.Store.
func (s *Store) Kind(id core.NodeID) (core.Kind, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.g.Kind(id)
}

// Property implements core.Store.
func (s *Store) Property(id core.NodeID, name string) (any, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.g.Property(id, name)
}

// SetProperty implements core.Store.
func (s *Store) SetProperty(id core.NodeID, name string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.g.SetProperty(id, name, value)
}

// Child implements core.Store.
func (s *Store) Child(id core.NodeID, slot string) (core.NodeID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.g.Child(id, slot)
}

// SetChild implements core.Store.
func (s *Store) SetChild(id core.NodeID, slot string, child core.NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.g.SetChild(id, slot, child)
}

// Children implements core.Store.
func (s *Store) Children(id core.NodeID, slot string) ([]core.NodeID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.g.Children(id, slot)
}

// SetChildren implements core.Store.
func (s *Store) SetChildren(id core.NodeID, slot string, children []core.NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.g.SetChildren(id, slot, children)
}

// Parent implements core.Store.
func (s *Store) Parent(id core.NodeID) (core.NodeID, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.g.Parent(id)
}

// Roots implements core.Store. Roots are returned in creation order.
func (s *Store) Roots() ([]core.NodeID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.g.Roots()
}

// DeleteNode implements core.Store.
func (s *Store) DeleteNode(id core.NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.g.DeleteNode(id); err != nil {
		return err
	}
	s.logger.Debug("deleted subtree", "root", id)
	return nil
}
