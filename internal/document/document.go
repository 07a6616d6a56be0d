// Package document decodes JSON into an order-preserving in-memory form.
//
// Values are represented as:
//   - *Object for JSON objects (member order preserved)
//   - []any for JSON arrays
//   - string, bool, json.Number, or nil for scalars
//
// Numbers are kept as json.Number so output round-trips without float
// conversion artifacts.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

var (
	// ErrTrailingData indicates input contains data after the first JSON value.
	ErrTrailingData = errors.New("document: trailing data after JSON value")

	// ErrMalformed indicates the JSON token stream is structurally invalid.
	ErrMalformed = errors.New("document: malformed JSON structure")
)

// Member is a single key/value entry of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object that remembers member insertion order.
type Object struct {
	members []Member
	index   map[string]int
}

// NewObject returns an empty Object ready for Set calls.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// Set appends a member, or replaces the value if the key already exists.
// Replacing keeps the key's original position, matching JSON decoder
// last-value-wins semantics for duplicate keys.
func (o *Object) Set(key string, value any) {
	if i, ok := o.index[key]; ok {
		o.members[i].Value = value
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: value})
}

// Get returns the value for key and whether the key exists.
func (o *Object) Get(key string) (any, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].Value, true
}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.members)
}

// Keys returns the member keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.members))
	for _, m := range o.members {
		keys = append(keys, m.Key)
	}
	return keys
}

// Members returns the members in insertion order.
// The returned slice must not be modified.
func (o *Object) Members() []Member {
	return o.members
}

// MarshalJSON encodes the object compactly with members in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o.members {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Decode reads a single JSON value from r into the ordered representation.
// Input with data after the first value is rejected.
func Decode(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	value, err := decodeValue(dec, tok)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, ErrTrailingData
	}

	return value, nil
}

// DecodeString decodes a JSON value from s.
func DecodeString(s string) (any, error) {
	return Decode(strings.NewReader(s))
}

func decodeValue(dec *json.Decoder, tok json.Token) (any, error) {
	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch d {
	case '{':
		return decodeObject(dec)
	case '[':
		return decodeArray(dec)
	default:
		return nil, fmt.Errorf("%w: unexpected %q", ErrMalformed, d)
	}
}

func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := NewObject()
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		if d, ok := tok.(json.Delim); ok && d == '}' {
			return obj, nil
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key is not a string", ErrMalformed)
		}

		valueToken, err := dec.Token()
		if err != nil {
			return nil, err
		}

		value, err := decodeValue(dec, valueToken)
		if err != nil {
			return nil, err
		}

		obj.Set(key, value)
	}
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	arr := make([]any, 0)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		if d, ok := tok.(json.Delim); ok && d == ']' {
			return arr, nil
		}

		value, err := decodeValue(dec, tok)
		if err != nil {
			return nil, err
		}

		arr = append(arr, value)
	}
}

// FromYAML decodes a YAML document into the same value shapes as Decode.
// YAML mappings do not preserve member order.
func FromYAML(data []byte) (any, error) {
	var value any
	if err := yaml.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return value, nil
}

// Plain converts ordered values into plain map[string]any / []any trees
// for libraries that only understand the stock decoder shapes.
func Plain(value any) any {
	switch v := value.(type) {
	case *Object:
		out := make(map[string]any, v.Len())
		for _, m := range v.Members() {
			out[m.Key] = Plain(m.Value)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = Plain(elem)
		}
		return out
	default:
		return value
	}
}

// TypeName returns a human-readable JSON type name for diagnostics.
func TypeName(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case *Object, map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, int, int64, uint64, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
