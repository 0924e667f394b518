// Package display renders query results for the command line.
package display

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/standardbeagle/osmtags/internal/query"
	"github.com/standardbeagle/osmtags/internal/tags"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ResultFormatter formats query results for display
type ResultFormatter struct {
	options FormatterOptions
}

// FormatterOptions controls result formatting
type FormatterOptions struct {
	Format string // "text", "json", "yaml"
	Indent string // Indentation string
}

// NewResultFormatter creates a new result formatter
func NewResultFormatter(options FormatterOptions) *ResultFormatter {
	if options.Indent == "" {
		options.Indent = "  "
	}
	if options.Format == "" {
		options.Format = FormatText
	}
	return &ResultFormatter{options: options}
}

// ValidFormat reports whether format is one of the output formats.
func ValidFormat(format string) bool {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// Format renders v in the configured format. The result ends in a newline.
func (rf *ResultFormatter) Format(v any) (string, error) {
	switch rf.options.Format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", rf.options.Indent)
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	case FormatYAML:
		return rf.formatYAML(v)
	case FormatText:
		return rf.formatText(v)
	default:
		return "", fmt.Errorf("unknown output format %q", rf.options.Format)
	}
}

func (rf *ResultFormatter) formatYAML(v any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(len(rf.options.Indent))
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// formatText has a hand-written layout for the common results and falls
// back to YAML for everything else.
func (rf *ResultFormatter) formatText(v any) (string, error) {
	var sb strings.Builder
	in := rf.options.Indent

	switch r := v.(type) {
	case []string:
		if len(r) == 0 {
			return "No values found\n", nil
		}
		for _, s := range r {
			sb.WriteString(s + "\n")
		}
	case tags.Tags:
		if r.Len() > 0 {
			sb.WriteString(tags.Format(r) + "\n")
		}
	case query.TagInfo:
		sb.WriteString(fmt.Sprintf("Key: %s\n", r.Key))
		if r.HasFieldDefinition {
			sb.WriteString(fmt.Sprintf("Field: %s (%s)\n", r.Name, r.Type))
		} else {
			sb.WriteString("Field: none\n")
		}
		for _, val := range r.Values {
			line := in + val.Value
			if val.Title != val.Value {
				line += " - " + val.Title
			}
			if val.Description != "" {
				line += ": " + val.Description
			}
			sb.WriteString(line + "\n")
		}
		writeSuggestions(&sb, r.Suggestions)
	case []query.TagMatch:
		if len(r) == 0 {
			return "No tags found\n", nil
		}
		for _, m := range r {
			sb.WriteString(fmt.Sprintf("%s=%s%s(%s)\n", m.Key, m.Value, in, m.Preset))
		}
	case []query.PresetSummary:
		if len(r) == 0 {
			return "No presets found\n", nil
		}
		for _, p := range r {
			sb.WriteString(fmt.Sprintf("%s%s%s [%s]\n", p.ID, in, p.Name, tags.Join(p.Tags, ", ")))
		}
	case []query.RelatedTag:
		if len(r) == 0 {
			return "No related tags found\n", nil
		}
		for _, t := range r {
			sb.WriteString(fmt.Sprintf("%s=%s%s%d\n", t.Key, t.Value, in, t.Count))
		}
	case query.DeprecationResult:
		sb.WriteString(r.Message + "\n")
		for _, c := range r.Cases {
			line := in + tags.Join(c.OldTags, " + ")
			if c.ReplacementTags != nil {
				line += " -> " + tags.Join(*c.ReplacementTags, " + ")
			}
			sb.WriteString(fmt.Sprintf("%s (%s)\n", line, c.DeprecationType))
		}
	case query.TagValidation:
		sb.WriteString(validationLine(r) + "\n")
		writeSuggestions(&sb, r.Suggestions)
	case query.CollectionValidation:
		sb.WriteString(fmt.Sprintf("Valid: %t (%d tags, %d valid, %d deprecated, %d errors)\n",
			r.Valid, r.TagCount, r.ValidCount, r.DeprecatedCount, r.ErrorCount))
		for _, res := range r.Results {
			sb.WriteString(in + validationLine(res) + "\n")
		}
	case query.Improvements:
		sb.WriteString("Matched presets:\n")
		for _, p := range r.MatchedPresets {
			sb.WriteString(fmt.Sprintf("%s%s (%s)\n", in, p.Name, p.ID))
		}
		if len(r.Warnings) > 0 {
			sb.WriteString("Warnings:\n")
			for _, w := range r.Warnings {
				sb.WriteString(in + w.Message + "\n")
			}
		}
		if len(r.Suggestions) > 0 {
			sb.WriteString("Suggestions:\n")
			for _, s := range r.Suggestions {
				sb.WriteString(fmt.Sprintf("%s[%s] %s\n", in, s.Kind, s.Message))
			}
		}
	case []query.CategorySummary:
		for _, c := range r {
			sb.WriteString(fmt.Sprintf("%s%s%s (%d presets)\n", c.ID, in, c.Name, c.PresetCount))
		}
	default:
		return rf.formatYAML(v)
	}
	return sb.String(), nil
}

func validationLine(r query.TagValidation) string {
	status := "ok"
	switch {
	case !r.Valid:
		status = "error"
	case r.Deprecated:
		status = "deprecated"
	case r.NonStandard:
		status = "warning"
	}
	return fmt.Sprintf("[%s] %s", status, r.Message)
}

func writeSuggestions(sb *strings.Builder, suggestions []string) {
	if len(suggestions) > 0 {
		sb.WriteString("Did you mean: " + strings.Join(suggestions, ", ") + "\n")
	}
}
