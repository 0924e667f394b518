package query

// SchemaStats summarizes the loaded dataset.
type SchemaStats struct {
	PresetCount           int      `json:"presetCount" yaml:"presetCount"`
	SearchablePresetCount int      `json:"searchablePresetCount" yaml:"searchablePresetCount"`
	FieldCount            int      `json:"fieldCount" yaml:"fieldCount"`
	CategoryCount         int      `json:"categoryCount" yaml:"categoryCount"`
	DeprecationCount      int      `json:"deprecationCount" yaml:"deprecationCount"`
	UniqueKeys            int      `json:"uniqueKeys" yaml:"uniqueKeys"`
	UniqueTags            int      `json:"uniqueTags" yaml:"uniqueTags"`
	Locale                string   `json:"locale" yaml:"locale"`
	Locales               []string `json:"locales" yaml:"locales"`
	Source                string   `json:"source" yaml:"source"`
	Fingerprint           string   `json:"fingerprint" yaml:"fingerprint"`
}

// GetSchemaStats counts the dataset's entities. UniqueTags counts the
// distinct literal key=value pairs used by preset patterns.
func (e *Engine) GetSchemaStats() SchemaStats {
	s := SchemaStats{
		PresetCount:      len(e.ix.Presets()),
		FieldCount:       len(e.ix.Fields()),
		CategoryCount:    len(e.ix.Categories()),
		DeprecationCount: len(e.ix.Deprecations()),
		UniqueKeys:       len(e.ix.Keys()),
		Locale:           e.ix.Locale(),
		Locales:          e.ix.Locales(),
		Source:           e.ix.Source(),
		Fingerprint:      e.ix.Fingerprint(),
	}
	for _, p := range e.ix.Presets() {
		if p.IsSearchable() {
			s.SearchablePresetCount++
		}
	}
	for _, k := range e.ix.Keys() {
		s.UniqueTags += len(e.ix.PresetValues(k))
	}
	return s
}
