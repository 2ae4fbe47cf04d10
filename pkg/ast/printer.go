package ast

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Fprint writes an indented outline of the subtree of n to w, one node per
// line, prefixed with the slot that holds it.
func Fprint(w io.Writer, n Node) error {
	snap, err := TakeSnapshot(n)
	if err != nil {
		return err
	}
	if snap == nil {
		_, err := fmt.Fprintln(w, "<nil>")
		return err
	}
	return fprintSnapshot(w, snap, "", 0)
}

func fprintSnapshot(w io.Writer, s *Snapshot, slot string, depth int) error {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", depth))
	if slot != "" {
		sb.WriteString(slot)
		sb.WriteString(": ")
	}
	sb.WriteString(string(s.Kind))
	schema, _ := SchemaOf(s.Kind)
	for _, name := range propertyOrder(schema, s.Properties) {
		fmt.Fprintf(&sb, " %s=%s", name, formatValue(s.Properties[name]))
	}
	if _, err := fmt.Fprintln(w, sb.String()); err != nil {
		return err
	}
	for _, sl := range s.Slots {
		for i, c := range sl.Nodes {
			name := sl.Name
			if len(sl.Nodes) > 1 || isList(schema, sl.Name) {
				name = fmt.Sprintf("%s[%d]", sl.Name, i)
			}
			if err := fprintSnapshot(w, c, name, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func propertyOrder(schema *Schema, props map[string]any) []string {
	if schema == nil {
		keys := make([]string, 0, len(props))
		for k := range props {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		return keys
	}
	var out []string
	for _, f := range schema.Fields {
		if _, ok := props[f.Name]; ok {
			out = append(out, f.Name)
		}
	}
	return out
}

func isList(schema *Schema, slot string) bool {
	if schema == nil {
		return false
	}
	f, ok := schema.Field(slot)
	return ok && f.Kind == ChildListField
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case []string:
		q := make([]string, len(v))
		for i, s := range v {
			q[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(q, ",") + "]"
	default:
		return fmt.Sprint(v)
	}
}
