package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// MaxAttributeDepth bounds how deeply attribute maps and lists may nest.
const MaxAttributeDepth = 8

// AttrKind tags the variant held by an AttrValue.
type AttrKind uint8

const (
	AttrString AttrKind = iota + 1
	AttrNumber
	AttrBool
	AttrList
	AttrMap
)

func (k AttrKind) String() string {
	switch k {
	case AttrString:
		return "string"
	case AttrNumber:
		return "number"
	case AttrBool:
		return "bool"
	case AttrList:
		return "list"
	case AttrMap:
		return "map"
	default:
		return "invalid"
	}
}

// AttrValue is one value of an attribute map: a string, number, boolean,
// list of values or nested map. Null is not representable.
type AttrValue struct {
	kind AttrKind
	str  string
	num  float64
	b    bool
	list []AttrValue
	m    Attributes
}

// Attributes is an open key/value mapping of template content, such as
// core_experience or flexible_logistics.
type Attributes map[string]AttrValue

func StringValue(s string) AttrValue { return AttrValue{kind: AttrString, str: s} }
func NumberValue(n float64) AttrValue { return AttrValue{kind: AttrNumber, num: n} }
func BoolValue(b bool) AttrValue { return AttrValue{kind: AttrBool, b: b} }
func ListValue(items ...AttrValue) AttrValue { return AttrValue{kind: AttrList, list: items} }
func MapValue(m Attributes) AttrValue { return AttrValue{kind: AttrMap, m: m} }

func (v AttrValue) Kind() AttrKind { return v.kind }

func (v AttrValue) AsString() (string, bool) { return v.str, v.kind == AttrString }

func (v AttrValue) AsNumber() (float64, bool) { return v.num, v.kind == AttrNumber }

func (v AttrValue) AsBool() (bool, bool) { return v.b, v.kind == AttrBool }

func (v AttrValue) AsList() ([]AttrValue, bool) { return v.list, v.kind == AttrList }

func (v AttrValue) AsMap() (Attributes, bool) { return v.m, v.kind == AttrMap }

var errNullAttribute = errors.New("null values are not allowed")

// MarshalJSON encodes the value as its plain JSON form.
func (v AttrValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case AttrString:
		return json.Marshal(v.str)
	case AttrNumber:
		return json.Marshal(v.num)
	case AttrBool:
		return json.Marshal(v.b)
	case AttrList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case AttrMap:
		return v.m.MarshalJSON()
	default:
		return nil, fmt.Errorf("attribute: cannot encode value of kind %s", v.kind)
	}
}

// UnmarshalJSON decodes any JSON value except null.
func (v *AttrValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := fromRaw(raw, 1)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalJSON encodes the map with sorted keys; a nil map encodes as {}.
func (a Attributes) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return []byte("{}"), nil
	}
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := a[k].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object. JSON null decodes to an empty map.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		*a = Attributes{}
		return nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return errors.New("attributes must be a JSON object")
	}
	m, err := mapFromRaw(obj, 1)
	if err != nil {
		return err
	}
	*a = m
	return nil
}

// Validate checks that keys are non-empty and nesting stays within
// MaxAttributeDepth. Values built through the constructors cannot be null.
func (a Attributes) Validate() error {
	return a.validate(1)
}

func (a Attributes) validate(depth int) error {
	if depth > MaxAttributeDepth {
		return fmt.Errorf("nesting deeper than %d levels", MaxAttributeDepth)
	}
	for k, v := range a {
		if k == "" {
			return errors.New("keys must be non-empty")
		}
		if err := v.validate(depth); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}
	return nil
}

func (v AttrValue) validate(depth int) error {
	switch v.kind {
	case AttrString, AttrNumber, AttrBool:
		return nil
	case AttrList:
		if depth+1 > MaxAttributeDepth {
			return fmt.Errorf("nesting deeper than %d levels", MaxAttributeDepth)
		}
		for i, item := range v.list {
			if err := item.validate(depth + 1); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		return nil
	case AttrMap:
		return v.m.validate(depth + 1)
	default:
		return errNullAttribute
	}
}

func fromRaw(raw any, depth int) (AttrValue, error) {
	if depth > MaxAttributeDepth {
		return AttrValue{}, fmt.Errorf("nesting deeper than %d levels", MaxAttributeDepth)
	}
	switch t := raw.(type) {
	case nil:
		return AttrValue{}, errNullAttribute
	case string:
		return StringValue(t), nil
	case bool:
		return BoolValue(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return AttrValue{}, fmt.Errorf("invalid number %q: %w", t.String(), err)
		}
		return NumberValue(f), nil
	case []any:
		items := make([]AttrValue, 0, len(t))
		for i, item := range t {
			v, err := fromRaw(item, depth+1)
			if err != nil {
				return AttrValue{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items = append(items, v)
		}
		return ListValue(items...), nil
	case map[string]any:
		m, err := mapFromRaw(t, depth+1)
		if err != nil {
			return AttrValue{}, err
		}
		return MapValue(m), nil
	default:
		return AttrValue{}, fmt.Errorf("unsupported value of type %T", raw)
	}
}

func mapFromRaw(obj map[string]any, depth int) (Attributes, error) {
	if depth > MaxAttributeDepth {
		return nil, fmt.Errorf("nesting deeper than %d levels", MaxAttributeDepth)
	}
	m := make(Attributes, len(obj))
	for k, raw := range obj {
		if k == "" {
			return nil, errors.New("keys must be non-empty")
		}
		v, err := fromRaw(raw, depth)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		m[k] = v
	}
	return m, nil
}
