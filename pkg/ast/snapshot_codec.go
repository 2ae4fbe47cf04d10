package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// plainSnapshot has the fields of Snapshot without its codec methods.
type plainSnapshot Snapshot

// floatValue writes a float property so that decoders read it back as a
// float: whole numbers keep a ".0" suffix.
type floatValue float64

func (f floatValue) text() (string, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("cannot encode non-finite float %v", v)
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, nil
}

// MarshalJSON implements json.Marshaler.
func (f floatValue) MarshalJSON() ([]byte, error) {
	s, err := f.text()
	return []byte(s), err
}

// MarshalYAML implements yaml.Marshaler.
func (f floatValue) MarshalYAML() (any, error) {
	s, err := f.text()
	if err != nil {
		return nil, err
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}, nil
}

func (s Snapshot) encodable() plainSnapshot {
	p := plainSnapshot(s)
	if len(s.Properties) == 0 {
		return p
	}
	p.Properties = maps.Clone(s.Properties)
	for k, v := range p.Properties {
		if f, ok := v.(float64); ok {
			p.Properties[k] = floatValue(f)
		}
	}
	return p
}

// MarshalJSON implements json.Marshaler.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.encodable())
}

// MarshalYAML implements yaml.Marshaler.
func (s Snapshot) MarshalYAML() (any, error) {
	return s.encodable(), nil
}

// UnmarshalJSON implements json.Unmarshaler. Numbers with a fraction or
// exponent decode as float64, all others as int64, so integers keep full
// precision. Unknown fields are an error.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var p plainSnapshot
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return err
	}
	for name, v := range p.Properties {
		n, ok := v.(json.Number)
		if !ok {
			continue
		}
		num, err := decodeNumber(n)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", p.Kind, name, err)
		}
		p.Properties[name] = num
	}
	*s = Snapshot(p)
	return nil
}

func decodeNumber(n json.Number) (any, error) {
	if strings.ContainsAny(n.String(), ".eE") {
		return n.Float64()
	}
	return n.Int64()
}
