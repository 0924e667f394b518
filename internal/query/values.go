package query

import (
	"sort"

	"github.com/standardbeagle/osmtags/internal/schema"
	"github.com/standardbeagle/osmtags/pkg/pathutil"
)

// ValueInfo is one known value of a key with its display strings.
type ValueInfo struct {
	Value       string `json:"value" yaml:"value"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// TagInfo describes a key.
type TagInfo struct {
	Key                string      `json:"key" yaml:"key"`
	Name               string      `json:"name,omitempty" yaml:"name,omitempty"`
	Type               string      `json:"type,omitempty" yaml:"type,omitempty"`
	Values             []ValueInfo `json:"values" yaml:"values"`
	HasFieldDefinition bool        `json:"hasFieldDefinition" yaml:"hasFieldDefinition"`
	Suggestions        []string    `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// GetTagValues returns every literal value known for key: the options of
// its field definition plus the values preset patterns use for the field's
// declared key (or the key itself when no field exists). Sorted, no duplicates.
func (e *Engine) GetTagValues(key string) []string {
	_, values := e.tagValues(key)
	return values
}

func (e *Engine) tagValues(key string) (*schema.Field, []string) {
	set := make(map[string]struct{})
	lookupKey := key

	field, ok := e.ix.FieldForKey(key)
	if ok {
		lookupKey = field.Key
		for _, o := range field.Options {
			if schema.IsLiteralValue(o) {
				set[o] = struct{}{}
			}
		}
	} else {
		field = nil
	}
	for _, v := range e.ix.PresetValues(lookupKey) {
		set[v] = struct{}{}
	}

	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return field, values
}

// GetTagInfo returns the values of key with translated titles, plus the
// field type and label when a field definition exists. The returned key is
// always in colon form.
func (e *Engine) GetTagInfo(key string) TagInfo {
	field, values := e.tagValues(key)

	info := TagInfo{
		Key:    pathutil.ToOSMKey(key),
		Values: make([]ValueInfo, 0, len(values)),
	}
	if field != nil {
		info.Key = field.Key
		info.HasFieldDefinition = true
		info.Type = field.Type
		info.Name = e.ix.FieldLabel(field)
	}

	for _, v := range values {
		vi := ValueInfo{Value: v, Title: v}
		if field != nil {
			o := e.ix.OptionStrings(field, v)
			vi.Title = o.Title
			vi.Description = o.Description
		}
		info.Values = append(info.Values, vi)
	}

	if field == nil && len(values) == 0 {
		info.Suggestions = e.suggestKeys(key)
	}
	return info
}
