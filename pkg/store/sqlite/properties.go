package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/leapstack-labs/sqltree/pkg/core"
)

// Stored value_type tags.
const (
	typeString  = "string"
	typeBool    = "bool"
	typeInt     = "int"
	typeFloat   = "float"
	typeStrings = "strings"
)

func encodeValue(v any) (string, string, error) {
	var typ string
	switch v.(type) {
	case string:
		typ = typeString
	case bool:
		typ = typeBool
	case int64:
		typ = typeInt
	case float64:
		typ = typeFloat
	case []string:
		typ = typeStrings
	default:
		return "", "", fmt.Errorf("%w: %T", core.ErrUnsupportedValue, v)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode %s value: %w", typ, err)
	}
	return typ, string(b), nil
}

func decodeValue(typ, raw string) (any, error) {
	var (
		v   any
		err error
	)
	switch typ {
	case typeString:
		var s string
		err = json.Unmarshal([]byte(raw), &s)
		v = s
	case typeBool:
		var b bool
		err = json.Unmarshal([]byte(raw), &b)
		v = b
	case typeInt:
		var i int64
		err = json.Unmarshal([]byte(raw), &i)
		v = i
	case typeFloat:
		var f float64
		err = json.Unmarshal([]byte(raw), &f)
		v = f
	case typeStrings:
		var ss []string
		err = json.Unmarshal([]byte(raw), &ss)
		if ss == nil {
			ss = []string{}
		}
		v = ss
	default:
		return nil, fmt.Errorf("%w: stored type %q", core.ErrUnsupportedValue, typ)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s value: %w", typ, err)
	}
	return v, nil
}

// Property implements core.Store.
func (s *Store) Property(id core.NodeID, name string) (any, bool, error) {
	var typ, raw sql.NullString
	err := s.q.QueryRow(`
		SELECT p.value_type, p.value FROM nodes n
		LEFT JOIN properties p ON p.node_id = n.id AND p.name = ?
		WHERE n.id = ?`, name, string(id)).Scan(&typ, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, &core.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get property: %w", err)
	}
	if !typ.Valid {
		return nil, false, nil
	}
	v, err := decodeValue(typ.String, raw.String)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// SetProperty implements core.Store.
func (s *Store) SetProperty(id core.NodeID, name string, value any) error {
	if err := core.CheckValue(value); err != nil {
		return err
	}
	return s.atomic(func(q querier) error {
		if err := mustExist(q, id); err != nil {
			return err
		}
		if value == nil {
			if _, err := q.Exec(`DELETE FROM properties WHERE node_id = ? AND name = ?`, string(id), name); err != nil {
				return fmt.Errorf("failed to delete property: %w", err)
			}
			return nil
		}
		typ, raw, err := encodeValue(value)
		if err != nil {
			return err
		}
		_, err = q.Exec(`
			INSERT INTO properties (node_id, name, value_type, value) VALUES (?, ?, ?, ?)
			ON CONFLICT(node_id, name) DO UPDATE SET value_type = excluded.value_type, value = excluded.value`,
			string(id), name, typ, raw)
		if err != nil {
			return fmt.Errorf("failed to set property: %w", err)
		}
		return nil
	})
}
