package tags

import (
	"sort"
	"strings"

	"github.com/valyala/fastjson"

	"github.com/standardbeagle/osmtags/internal/errors"
)

// Messages used by the normalizer errors.
const (
	MsgMissingSeparator = "missing '=' separator"
	MsgEmptyKey         = "empty key"
	MsgNotObject        = "must be an object"
	MsgMalformedJSON    = "malformed JSON"
	MsgNonStringValue   = "All values must be strings"
	MsgUnsupportedInput = "tags must be key=value text, a JSON object or a string map"
)

// Parse normalizes any supported tag input into a canonical mapping.
//
// Accepted shapes, in priority order:
//  1. a mapping (Tags, map[string]string, map[string]any) validated in place
//  2. text whose first non-space character is '{' or '[', parsed as JSON
//  3. any other text, parsed as key=value lines
func Parse(input any) (Tags, error) {
	switch v := input.(type) {
	case Tags:
		return FromStringMap(v.Map(), v.Keys())
	case *Tags:
		if v == nil {
			return Tags{}, nil
		}
		return FromStringMap(v.Map(), v.Keys())
	case map[string]string:
		return FromStringMap(v, nil)
	case map[string]any:
		return FromMap(v)
	case string:
		return ParseText(v)
	case []byte:
		return ParseText(string(v))
	default:
		return Tags{}, errors.NewFormatError(MsgUnsupportedInput)
	}
}

// byteOrderMark is what editors on Windows prepend to UTF-8 files.
const byteOrderMark = "\ufeff"

// ParseText parses text that is either a JSON object or key=value lines.
func ParseText(text string) (Tags, error) {
	text = strings.TrimPrefix(text, byteOrderMark)
	if looksLikeJSON(text) {
		return ParseJSON([]byte(text))
	}
	return ParseLines(text)
}

func looksLikeJSON(text string) bool {
	trimmed := strings.TrimSpace(text)
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}

// ParseLines parses newline-separated key=value pairs.
//
// Blank lines and lines starting with '#' are skipped. The first '=' splits
// key from value, so values may contain '='. A later duplicate key wins.
func ParseLines(text string) (Tags, error) {
	text = strings.TrimPrefix(text, byteOrderMark)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var out Tags
	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx < 0 {
			return Tags{}, errors.NewLineFormatError(MsgMissingSeparator, lineNo)
		}

		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if key == "" {
			return Tags{}, errors.NewLineFormatError(MsgEmptyKey, lineNo)
		}
		out.Set(key, value)
	}
	return out, nil
}

// ParseJSON parses a JSON object of string values, preserving key order.
func ParseJSON(data []byte) (Tags, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return Tags{}, errors.NewFormatError(MsgMalformedJSON).WithUnderlying(err)
	}
	return fromJSONValue(v)
}

// ParseRaw normalizes a raw JSON argument that is either a JSON string holding
// tag text or a JSON object of tags. Object key order is preserved.
func ParseRaw(raw []byte) (Tags, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(raw)
	if err != nil {
		return Tags{}, errors.NewFormatError(MsgMalformedJSON).WithUnderlying(err)
	}

	switch v.Type() {
	case fastjson.TypeString:
		s, _ := v.StringBytes()
		return ParseText(string(s))
	case fastjson.TypeObject:
		return fromJSONValue(v)
	default:
		return Tags{}, errors.NewFormatError(MsgUnsupportedInput)
	}
}

func fromJSONValue(v *fastjson.Value) (Tags, error) {
	obj, err := v.Object()
	if err != nil {
		return Tags{}, errors.NewFormatError(MsgNotObject)
	}

	var out Tags
	var visitErr error
	obj.Visit(func(k []byte, val *fastjson.Value) {
		if visitErr != nil {
			return
		}
		key := strings.TrimSpace(string(k))
		if val.Type() != fastjson.TypeString {
			visitErr = errors.NewTypeError(MsgNonStringValue, key)
			return
		}
		if key == "" {
			visitErr = errors.NewFormatError(MsgEmptyKey)
			return
		}
		s, _ := val.StringBytes()
		out.Set(key, strings.TrimSpace(string(s)))
	})
	if visitErr != nil {
		return Tags{}, visitErr
	}
	return out, nil
}

// FromMap validates a loosely-typed mapping. Go maps carry no order, so keys
// are taken in lexicographic order.
func FromMap(m map[string]any) (Tags, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out Tags
	for _, k := range keys {
		key := strings.TrimSpace(k)
		s, ok := m[k].(string)
		if !ok {
			return Tags{}, errors.NewTypeError(MsgNonStringValue, key)
		}
		if key == "" {
			return Tags{}, errors.NewFormatError(MsgEmptyKey)
		}
		out.Set(key, strings.TrimSpace(s))
	}
	return out, nil
}

// FromStringMap trims and validates a string mapping. When order is nil the
// keys are taken in lexicographic order.
func FromStringMap(m map[string]string, order []string) (Tags, error) {
	if order == nil {
		order = make([]string, 0, len(m))
		for k := range m {
			order = append(order, k)
		}
		sort.Strings(order)
	}

	var out Tags
	for _, k := range order {
		key := strings.TrimSpace(k)
		if key == "" {
			return Tags{}, errors.NewFormatError(MsgEmptyKey)
		}
		out.Set(key, strings.TrimSpace(m[k]))
	}
	return out, nil
}
