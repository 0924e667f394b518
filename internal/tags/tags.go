// Package tags holds the canonical OSM tag mapping and the normalizer that
// turns free-form tag input (key=value lines, JSON text or a native map) into it.
package tags

import (
	"bytes"
	"iter"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// Tag is a single key=value pair.
type Tag struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// String returns the key=value form.
func (t Tag) String() string {
	return t.Key + "=" + t.Value
}

// Tags is an insertion-ordered mapping of tag keys to values.
// Setting an existing key replaces its value and keeps its original position.
// The zero value is an empty mapping ready to use.
type Tags struct {
	keys   []string
	values map[string]string
}

// New creates a Tags from alternating key/value pairs. It panics on an odd
// number of arguments; intended for literals in code and tests.
func New(kv ...string) Tags {
	if len(kv)%2 != 0 {
		panic("tags.New: odd number of arguments")
	}
	var t Tags
	for i := 0; i < len(kv); i += 2 {
		t.Set(kv[i], kv[i+1])
	}
	return t
}

// Set stores value under key.
func (t *Tags) Set(key, value string) {
	if t.values == nil {
		t.values = make(map[string]string)
	}
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// Get returns the value for key.
func (t Tags) Get(key string) (string, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Has reports whether key is present.
func (t Tags) Has(key string) bool {
	_, ok := t.values[key]
	return ok
}

// Len returns the number of entries.
func (t Tags) Len() int {
	return len(t.keys)
}

// Keys returns the keys in insertion order.
func (t Tags) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Pairs returns the entries in insertion order.
func (t Tags) Pairs() []Tag {
	out := make([]Tag, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, Tag{Key: k, Value: t.values[k]})
	}
	return out
}

// All iterates entries in insertion order.
func (t Tags) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range t.keys {
			if !yield(k, t.values[k]) {
				return
			}
		}
	}
}

// Map returns an unordered copy of the entries.
func (t Tags) Map() map[string]string {
	out := make(map[string]string, len(t.keys))
	for k, v := range t.values {
		out[k] = v
	}
	return out
}

// Equal reports whether both mappings hold the same entries, ignoring order.
func (t Tags) Equal(other Tags) bool {
	if t.Len() != other.Len() {
		return false
	}
	for k, v := range t.values {
		if ov, ok := other.values[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// String renders the mapping as key=value lines.
func (t Tags) String() string {
	return Format(t)
}

// Format renders tags as newline-separated key=value lines, in order.
func Format(t Tags) string {
	var sb strings.Builder
	for i, k := range t.keys {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(t.values[k])
	}
	return sb.String()
}

// Join renders tags on a single line, e.g. "amenity=parking + parking=multi-storey".
func Join(t Tags, sep string) string {
	parts := make([]string, 0, t.Len())
	for _, tag := range t.Pairs() {
		parts = append(parts, tag.String())
	}
	return strings.Join(parts, sep)
}

// MarshalJSON encodes the mapping as a JSON object preserving order.
func (t Tags) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(t.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the mapping as an ordered list of pairs.
func (t Tags) MarshalYAML() (interface{}, error) {
	return t.Pairs(), nil
}

// UnmarshalJSON decodes a JSON object of string values, preserving key order.
// A JSON null leaves the mapping empty.
func (t *Tags) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = Tags{}
		return nil
	}
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// SortedKeys returns the keys in lexicographic order.
func (t Tags) SortedKeys() []string {
	keys := t.Keys()
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy.
func (t Tags) Clone() Tags {
	var out Tags
	for _, k := range t.keys {
		out.Set(k, t.values[k])
	}
	return out
}

// ToJSON renders tags as an indented JSON object in insertion order.
func ToJSON(t Tags) (string, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
