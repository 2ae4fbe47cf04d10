package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/leapstack-labs/sqltree/pkg/core"
)

// CreateNode implements core.Store.
func (s *Store) CreateNode(kind core.Kind) (core.NodeID, error) {
	if kind == "" {
		return "", fmt.Errorf("create node: empty kind")
	}
	id := s.newID()
	if _, err := s.q.Exec(`INSERT INTO nodes (id, kind) VALUES (?, ?)`, string(id), string(kind)); err != nil {
		return "", fmt.Errorf("failed to create node: %w", err)
	}
	s.logger.Debug("created node", "id", id, "kind", kind)
	return id, nil
}

// Kind implements core.Store.
func (s *Store) Kind(id core.NodeID) (core.Kind, error) {
	var kind string
	err := s.q.QueryRow(`SELECT kind FROM nodes WHERE id = ?`, string(id)).Scan(&kind)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &core.NotFoundError{ID: id}
	}
	if err != nil {
		return "", fmt.Errorf("failed to get node kind: %w", err)
	}
	return core.Kind(kind), nil
}

func mustExist(q querier, id core.NodeID) error {
	var one int
	err := q.QueryRow(`SELECT 1 FROM nodes WHERE id = ?`, string(id)).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return &core.NotFoundError{ID: id}
	}
	if err != nil {
		return fmt.Errorf("failed to look up node: %w", err)
	}
	return nil
}

// Child implements core.Store.
func (s *Store) Child(id core.NodeID, slot string) (core.NodeID, error) {
	return child(s.q, id, slot)
}

func child(q querier, id core.NodeID, slot string) (core.NodeID, error) {
	var c sql.NullString
	err := q.QueryRow(`
		SELECT c.id FROM nodes p
		LEFT JOIN nodes c ON c.parent_id = p.id AND c.parent_slot = ? AND c.is_list = 0
		WHERE p.id = ?`, slot, string(id)).Scan(&c)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &core.NotFoundError{ID: id}
	}
	if err != nil {
		return "", fmt.Errorf("failed to get child: %w", err)
	}
	return core.NodeID(c.String), nil
}

// SetChild implements core.Store.
func (s *Store) SetChild(id core.NodeID, slot string, c core.NodeID) error {
	return s.atomic(func(q querier) error {
		old, err := child(q, id, slot)
		if err != nil {
			return err
		}
		if old == c {
			return nil
		}
		if !c.IsZero() {
			if err := checkAttach(q, id, slot, c, nil); err != nil {
				return err
			}
		}
		if !old.IsZero() {
			if err := detach(q, old); err != nil {
				return err
			}
		}
		if c.IsZero() {
			return nil
		}
		return attach(q, id, slot, c, false, 0)
	})
}

// Children implements core.Store.
func (s *Store) Children(id core.NodeID, slot string) ([]core.NodeID, error) {
	if err := mustExist(s.q, id); err != nil {
		return nil, err
	}
	return listChildren(s.q, id, slot)
}

func listChildren(q querier, id core.NodeID, slot string) ([]core.NodeID, error) {
	rows, err := q.Query(`
		SELECT id FROM nodes
		WHERE parent_id = ? AND parent_slot = ? AND is_list = 1
		ORDER BY position`, string(id), slot)
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}
	defer rows.Close()

	var ids []core.NodeID
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		ids = append(ids, core.NodeID(c))
	}
	return ids, rows.Err()
}

// SetChildren implements core.Store.
func (s *Store) SetChildren(id core.NodeID, slot string, children []core.NodeID) error {
	return s.atomic(func(q querier) error {
		if err := mustExist(q, id); err != nil {
			return err
		}
		current, err := listChildren(q, id, slot)
		if err != nil {
			return err
		}
		seen := make(map[core.NodeID]bool, len(children))
		for _, c := range children {
			if c.IsZero() {
				return fmt.Errorf("set %s children: zero node id", slot)
			}
			if seen[c] {
				return fmt.Errorf("%w: %s listed twice in %s", core.ErrAlreadyAttached, c, slot)
			}
			seen[c] = true
			if err := checkAttach(q, id, slot, c, current); err != nil {
				return err
			}
		}
		for _, c := range current {
			if !seen[c] {
				if err := detach(q, c); err != nil {
					return err
				}
			}
		}
		for i, c := range children {
			if err := attach(q, id, slot, c, true, i); err != nil {
				return err
			}
		}
		return nil
	})
}

// checkAttach verifies c may be placed in parent's slot: it exists, is a
// root (or already a member of current) and is not parent or an ancestor
// of parent.
func checkAttach(q querier, parent core.NodeID, slot string, c core.NodeID, current []core.NodeID) error {
	var pid, pslot sql.NullString
	err := q.QueryRow(`SELECT parent_id, parent_slot FROM nodes WHERE id = ?`, string(c)).Scan(&pid, &pslot)
	if errors.Is(err, sql.ErrNoRows) {
		return &core.NotFoundError{ID: c}
	}
	if err != nil {
		return fmt.Errorf("failed to look up node: %w", err)
	}
	if pid.Valid {
		member := pid.String == string(parent) && pslot.String == slot && contains(current, c)
		if !member {
			return fmt.Errorf("%w: %s is held by %s.%s", core.ErrAlreadyAttached, c, pid.String, pslot.String)
		}
	}

	var cyc int
	err = q.QueryRow(`
		WITH RECURSIVE anc(id) AS (
			SELECT ?
			UNION ALL
			SELECT n.parent_id FROM nodes n JOIN anc ON n.id = anc.id
			WHERE n.parent_id IS NOT NULL
		)
		SELECT COUNT(*) FROM anc WHERE id = ?`, string(parent), string(c)).Scan(&cyc)
	if err != nil {
		return fmt.Errorf("failed to check ancestry: %w", err)
	}
	if cyc > 0 {
		return fmt.Errorf("%w: %s", core.ErrCycle, c)
	}
	return nil
}

func contains(ids []core.NodeID, id core.NodeID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func attach(q querier, parent core.NodeID, slot string, c core.NodeID, list bool, pos int) error {
	isList := 0
	if list {
		isList = 1
	}
	_, err := q.Exec(`
		UPDATE nodes SET parent_id = ?, parent_slot = ?, is_list = ?, position = ?
		WHERE id = ?`, string(parent), slot, isList, pos, string(c))
	if err != nil {
		return fmt.Errorf("failed to attach child: %w", err)
	}
	return nil
}

func detach(q querier, id core.NodeID) error {
	_, err := q.Exec(`
		UPDATE nodes SET parent_id = NULL, parent_slot = NULL, is_list = 0, position = 0
		WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("failed to detach node: %w", err)
	}
	return nil
}

// Parent implements core.Store.
func (s *Store) Parent(id core.NodeID) (core.NodeID, string, error) {
	var pid, slot sql.NullString
	err := s.q.QueryRow(`SELECT parent_id, parent_slot FROM nodes WHERE id = ?`, string(id)).Scan(&pid, &slot)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", &core.NotFoundError{ID: id}
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to get parent: %w", err)
	}
	return core.NodeID(pid.String), slot.String, nil
}

// Roots implements core.Store. Roots are returned in insertion order.
func (s *Store) Roots() ([]core.NodeID, error) {
	rows, err := s.q.Query(`SELECT id FROM nodes WHERE parent_id IS NULL ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roots: %w", err)
	}
	defer rows.Close()

	var ids []core.NodeID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan root: %w", err)
		}
		ids = append(ids, core.NodeID(id))
	}
	return ids, rows.Err()
}

const subtreeCTE = `
	WITH RECURSIVE sub(id) AS (
		SELECT ?
		UNION ALL
		SELECT n.id FROM nodes n JOIN sub ON n.parent_id = sub.id
	)`

// DeleteNode implements core.Store.
func (s *Store) DeleteNode(id core.NodeID) error {
	err := s.atomic(func(q querier) error {
		if err := mustExist(q, id); err != nil {
			return err
		}
		if _, err := q.Exec(subtreeCTE+` DELETE FROM properties WHERE node_id IN (SELECT id FROM sub)`, string(id)); err != nil {
			return fmt.Errorf("failed to delete properties: %w", err)
		}
		// Parent links are checked at statement end, so one statement may
		// remove the whole subtree.
		if _, err := q.Exec(subtreeCTE+` DELETE FROM nodes WHERE id IN (SELECT id FROM sub)`, string(id)); err != nil {
			return fmt.Errorf("failed to delete nodes: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("deleted subtree", "root", id)
	return nil
}
