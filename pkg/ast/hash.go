package ast

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/zeebo/xxh3"
)

// value tags written ahead of property payloads so that, for example, the
// string "1" and the int64 1 hash differently.
const (
	tagAbsent byte = iota
	tagString
	tagBool
	tagInt
	tagFloat
	tagStrings
	tagNode
	tagList
)

// Hash returns a structural hash consistent with Equal. The kind tag is
// combined with every declared field in schema order; an absent property or
// empty slot contributes 0.
func Hash(n Node) (uint64, error) {
	if isNil(n) {
		return 0, nil
	}
	b := n.base()
	h := xxh3.New()
	_, _ = h.WriteString(string(b.schema.Kind))
	var buf []byte
	for _, f := range b.schema.Fields {
		var err error
		buf, err = appendField(buf[:0], b, f)
		if err != nil {
			return 0, err
		}
		_, _ = h.Write(buf)
	}
	return h.Sum64(), nil
}

func appendField(buf []byte, b *Base, f Field) ([]byte, error) {
	switch f.Kind {
	case PropertyField:
		v, ok, err := b.Property(f.Name)
		if err != nil {
			return nil, err
		}
		if !ok {
			return binary.LittleEndian.AppendUint64(buf, 0), nil
		}
		return appendValue(buf, v)
	case ChildField:
		c, err := b.Child(f.Name, f.Requires)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return binary.LittleEndian.AppendUint64(buf, 0), nil
		}
		ch, err := Hash(c)
		if err != nil {
			return nil, err
		}
		buf = append(buf, tagNode)
		return binary.LittleEndian.AppendUint64(buf, ch), nil
	case ChildListField:
		cs, err := b.Children(f.Name, f.Requires)
		if err != nil {
			return nil, err
		}
		if len(cs) == 0 {
			return binary.LittleEndian.AppendUint64(buf, 0), nil
		}
		buf = append(buf, tagList)
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(cs)))
		for _, c := range cs {
			ch, err := Hash(c)
			if err != nil {
				return nil, err
			}
			buf = binary.LittleEndian.AppendUint64(buf, ch)
		}
		return buf, nil
	}
	return buf, nil
}

func appendValue(buf []byte, v any) ([]byte, error) {
	switch v := v.(type) {
	case string:
		buf = append(buf, tagString)
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(v)))
		return append(buf, v...), nil
	case bool:
		buf = append(buf, tagBool)
		if v {
			return append(buf, 1), nil
		}
		return append(buf, 0), nil
	case int64:
		buf = append(buf, tagInt)
		return binary.LittleEndian.AppendUint64(buf, uint64(v)), nil
	case float64:
		buf = append(buf, tagFloat)
		return binary.LittleEndian.AppendUint64(buf, math.Float64bits(v)), nil
	case []string:
		buf = append(buf, tagStrings)
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(v)))
		for _, s := range v {
			buf = binary.LittleEndian.AppendUint64(buf, uint64(len(s)))
			buf = append(buf, s...)
		}
		return buf, nil
	default:
		return nil, fmt.Errorf("hash: unsupported property value %T", v)
	}
}
