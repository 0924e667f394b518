package query

import (
	"sort"
	"strings"

	"github.com/standardbeagle/osmtags/internal/schema"
	"github.com/standardbeagle/osmtags/internal/tags"
	"github.com/standardbeagle/osmtags/pkg/pathutil"
)

// FieldRef is a resolved field reference of a preset.
type FieldRef struct {
	ID      string   `json:"id" yaml:"id"`
	Key     string   `json:"key" yaml:"key"`
	Type    string   `json:"type,omitempty" yaml:"type,omitempty"`
	Label   string   `json:"label,omitempty" yaml:"label,omitempty"`
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`
}

// PresetDetails is the full view of a preset.
type PresetDetails struct {
	ID          string     `json:"id" yaml:"id"`
	Found       bool       `json:"found" yaml:"found"`
	Name        string     `json:"name,omitempty" yaml:"name,omitempty"`
	Icon        string     `json:"icon,omitempty" yaml:"icon,omitempty"`
	Geometry    []string   `json:"geometry,omitempty" yaml:"geometry,omitempty"`
	Tags        *tags.Tags `json:"tags,omitempty" yaml:"tags,omitempty"`
	AddTags     *tags.Tags `json:"addTags,omitempty" yaml:"addTags,omitempty"`
	Terms       []string   `json:"terms,omitempty" yaml:"terms,omitempty"`
	Fields      []FieldRef `json:"fields,omitempty" yaml:"fields,omitempty"`
	MoreFields  []FieldRef `json:"moreFields,omitempty" yaml:"moreFields,omitempty"`
	Searchable  bool       `json:"searchable" yaml:"searchable"`
	Suggestions []string   `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// maxTemplateDepth bounds {preset} template expansion.
const maxTemplateDepth = 4

// GetPresetDetails returns a preset with its field references resolved.
// Template references such as "{amenity/restaurant}" expand to the
// referenced preset's list. Unknown ids yield Found=false and similar ids.
func (e *Engine) GetPresetDetails(id string) PresetDetails {
	id = strings.TrimSpace(id)
	p, ok := e.ix.Preset(id)
	if !ok {
		return PresetDetails{ID: id, Suggestions: e.suggestPresets(id)}
	}

	d := PresetDetails{
		ID:         p.ID,
		Found:      true,
		Name:       e.ix.PresetName(p),
		Icon:       p.Icon,
		Geometry:   p.Geometry,
		Tags:       clonePtr(p.Tags),
		Terms:      e.ix.PresetTerms(p),
		Searchable: p.IsSearchable(),
	}
	if p.AddTags.Len() > 0 {
		d.AddTags = clonePtr(p.AddTags)
	}
	d.Fields = e.resolveFieldRefs(p.Fields, func(tp *schema.Preset) []string { return tp.Fields })
	d.MoreFields = e.resolveFieldRefs(p.MoreFields, func(tp *schema.Preset) []string { return tp.MoreFields })
	return d
}

func (e *Engine) resolveFieldRefs(refs []string, list func(*schema.Preset) []string) []FieldRef {
	var out []FieldRef
	seen := make(map[string]struct{})
	var walk func(refs []string, depth int)
	walk = func(refs []string, depth int) {
		for _, ref := range refs {
			if schema.IsTemplateRef(ref) {
				target := strings.Trim(ref, "{}")
				if tp, ok := e.ix.Preset(target); ok && depth < maxTemplateDepth {
					walk(list(tp), depth+1)
				}
				continue
			}
			if _, dup := seen[ref]; dup {
				continue
			}
			seen[ref] = struct{}{}
			out = append(out, e.fieldRef(ref))
		}
	}
	walk(refs, 0)
	return out
}

func (e *Engine) fieldRef(ref string) FieldRef {
	f, ok := e.ix.Field(ref)
	if !ok {
		return FieldRef{ID: ref, Key: pathutil.ToOSMKey(ref)}
	}
	return FieldRef{
		ID:      ref,
		Key:     f.Key,
		Type:    f.Type,
		Label:   e.ix.FieldLabel(f),
		Options: f.Options,
	}
}

func (e *Engine) suggestPresets(id string) []string {
	ids := make([]string, 0, len(e.ix.Presets()))
	for _, p := range e.ix.Presets() {
		ids = append(ids, p.ID)
	}
	return e.fuzzy.Suggest(id, ids, e.opts.MaxSuggestions)
}

// PresetTags is the tag pattern of a preset.
type PresetTags struct {
	ID      string     `json:"id" yaml:"id"`
	Found   bool       `json:"found" yaml:"found"`
	Tags    *tags.Tags `json:"tags,omitempty" yaml:"tags,omitempty"`
	AddTags *tags.Tags `json:"addTags,omitempty" yaml:"addTags,omitempty"`
}

// GetPresetTags returns the identifying tags and addTags of a preset.
func (e *Engine) GetPresetTags(id string) PresetTags {
	id = strings.TrimSpace(id)
	p, ok := e.ix.Preset(id)
	if !ok {
		return PresetTags{ID: id}
	}
	res := PresetTags{ID: id, Found: true, Tags: clonePtr(p.Tags)}
	if p.AddTags.Len() > 0 {
		res.AddTags = clonePtr(p.AddTags)
	}
	return res
}

func clonePtr(t tags.Tags) *tags.Tags {
	c := t.Clone()
	return &c
}

// CategorySummary describes one preset category.
type CategorySummary struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
	PresetCount int    `json:"presetCount" yaml:"presetCount"`
}

// GetCategories lists all categories in dataset order.
func (e *Engine) GetCategories() []CategorySummary {
	out := make([]CategorySummary, 0, len(e.ix.Categories()))
	for _, c := range e.ix.Categories() {
		out = append(out, CategorySummary{
			ID:          c.ID,
			Name:        e.ix.CategoryName(c),
			Icon:        c.Icon,
			PresetCount: len(c.Members),
		})
	}
	return out
}

// CategoryTags lists a category's presets and the tags they use.
type CategoryTags struct {
	Category string          `json:"category" yaml:"category"`
	Found    bool            `json:"found" yaml:"found"`
	ID       string          `json:"id,omitempty" yaml:"id,omitempty"`
	Name     string          `json:"name,omitempty" yaml:"name,omitempty"`
	Presets  []PresetSummary `json:"presets" yaml:"presets"`
	Tags     []tags.Tag      `json:"tags" yaml:"tags"`
}

// GetCategoryTags resolves a category by id or by case-insensitive name and
// returns its member presets and their distinct literal tags, sorted.
// Members that are not known presets are skipped.
func (e *Engine) GetCategoryTags(category string) CategoryTags {
	category = strings.TrimSpace(category)
	res := CategoryTags{Category: category, Presets: []PresetSummary{}, Tags: []tags.Tag{}}

	c, ok := e.findCategory(category)
	if !ok {
		return res
	}
	res.Found = true
	res.ID = c.ID
	res.Name = e.ix.CategoryName(c)

	seen := make(map[tags.Tag]struct{})
	for _, id := range c.Members {
		p, ok := e.ix.Preset(id)
		if !ok {
			continue
		}
		res.Presets = append(res.Presets, e.summarize(p))
		for k, v := range p.Tags.All() {
			if schema.IsLiteralValue(v) {
				seen[tags.Tag{Key: k, Value: v}] = struct{}{}
			}
		}
	}
	for t := range seen {
		res.Tags = append(res.Tags, t)
	}
	sort.Slice(res.Tags, func(i, j int) bool {
		if res.Tags[i].Key != res.Tags[j].Key {
			return res.Tags[i].Key < res.Tags[j].Key
		}
		return res.Tags[i].Value < res.Tags[j].Value
	})
	return res
}

func (e *Engine) findCategory(category string) (*schema.Category, bool) {
	if c, ok := e.ix.Category(category); ok {
		return c, true
	}
	for _, c := range e.ix.Categories() {
		if strings.EqualFold(e.ix.CategoryName(c), category) {
			return c, true
		}
	}
	return nil, false
}
