package query

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/osmtags/internal/errors"
	"github.com/standardbeagle/osmtags/internal/schema"
	"github.com/standardbeagle/osmtags/internal/tags"
)

// TagMatch is one key=value pair found by SearchTags.
type TagMatch struct {
	Key    string `json:"key" yaml:"key"`
	Value  string `json:"value" yaml:"value"`
	Preset string `json:"preset" yaml:"preset"` // name of the preset that surfaced the pair
}

// SearchTags finds tags by keyword. A preset whose name, tag keys or tag
// values (including addTags) contain the keyword contributes all of its
// literal tags. Results follow preset definition order, are unique per
// key=value pair and stop at limit.
func (e *Engine) SearchTags(keyword string, limit int) []TagMatch {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	out := []TagMatch{}
	if kw == "" {
		return out
	}
	limit = e.limit(limit)

	seen := make(map[string]struct{})
	for _, p := range e.ix.Presets() {
		name := e.ix.PresetName(p)
		if !strings.Contains(strings.ToLower(name), kw) &&
			!tagsContain(p.Tags, kw) && !tagsContain(p.AddTags, kw) {
			continue
		}
		for _, set := range []tags.Tags{p.Tags, p.AddTags} {
			for k, v := range set.All() {
				if !schema.IsLiteralValue(v) {
					continue
				}
				pair := k + "=" + v
				if _, dup := seen[pair]; dup {
					continue
				}
				seen[pair] = struct{}{}
				out = append(out, TagMatch{Key: k, Value: v, Preset: name})
				if len(out) >= limit {
					return out
				}
			}
		}
	}
	return out
}

func tagsContain(t tags.Tags, kw string) bool {
	for k, v := range t.All() {
		if strings.Contains(strings.ToLower(k), kw) || strings.Contains(strings.ToLower(v), kw) {
			return true
		}
	}
	return false
}

// PresetSummary is a compact view of a preset.
type PresetSummary struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Icon     string    `json:"icon,omitempty" yaml:"icon,omitempty"`
	Geometry []string  `json:"geometry" yaml:"geometry"`
	Tags     tags.Tags `json:"tags" yaml:"tags"`
}

func (e *Engine) summarize(p *schema.Preset) PresetSummary {
	geometry := p.Geometry
	if geometry == nil {
		geometry = []string{}
	}
	return PresetSummary{ID: p.ID, Name: e.ix.PresetName(p), Icon: p.Icon, Geometry: geometry, Tags: p.Tags.Clone()}
}

// PresetSearch holds the parameters of SearchPresets.
type PresetSearch struct {
	Keyword   string
	Geometry  string // point, vertex, line, area or relation
	IDPattern string // doublestar glob over preset ids, e.g. "amenity/parking*"
	Limit     int
}

// Preset search ranks, best first.
const (
	rankExactName = iota
	rankNamePrefix
	rankNameContains
	rankOther
	rankNone
)

// SearchPresets finds searchable presets by name, id and search terms.
// Words are also compared by stem, so "garages" finds "Parking Garage".
// An empty keyword matches every preset that passes the filters.
func (e *Engine) SearchPresets(q PresetSearch) ([]PresetSummary, error) {
	if q.IDPattern != "" && !doublestar.ValidatePattern(q.IDPattern) {
		return nil, errors.NewFormatError("invalid id_pattern " + q.IDPattern)
	}
	kw := strings.ToLower(strings.TrimSpace(q.Keyword))
	limit := e.limit(q.Limit)

	type ranked struct {
		p    *schema.Preset
		rank int
	}
	var hits []ranked
	for _, p := range e.ix.Presets() {
		if !p.IsSearchable() {
			continue
		}
		if q.Geometry != "" && !p.HasGeometry(q.Geometry) {
			continue
		}
		if q.IDPattern != "" {
			if ok, _ := doublestar.Match(q.IDPattern, p.ID); !ok {
				continue
			}
		}
		rank := e.presetRank(p, kw)
		if rank == rankNone {
			continue
		}
		hits = append(hits, ranked{p, rank})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].rank < hits[j].rank })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]PresetSummary, 0, len(hits))
	for _, h := range hits {
		out = append(out, e.summarize(h.p))
	}
	return out, nil
}

func (e *Engine) presetRank(p *schema.Preset, kw string) int {
	if kw == "" {
		return rankOther
	}
	name := strings.ToLower(e.ix.PresetName(p))
	switch {
	case name == kw:
		return rankExactName
	case strings.HasPrefix(name, kw):
		return rankNamePrefix
	case strings.Contains(name, kw):
		return rankNameContains
	case strings.Contains(strings.ToLower(p.ID), kw):
		return rankOther
	}

	terms := e.ix.PresetTerms(p)
	for _, term := range terms {
		if strings.Contains(strings.ToLower(term), kw) {
			return rankOther
		}
	}
	if e.stemmer.MatchWords(kw, name+" "+strings.Join(terms, " ")) {
		return rankOther
	}
	return rankNone
}

// RelatedTag is a tag that appears alongside the queried one, with the
// number of presets it co-occurs in.
type RelatedTag struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// GetRelatedTags counts the literal tags that share a preset with key
// (or key=value) across preset tags and addTags. A preset pattern of "*"
// for key matches any value. Sorted by count, then key and value.
func (e *Engine) GetRelatedTags(key, value string, limit int) []RelatedTag {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	out := []RelatedTag{}
	if key == "" {
		return out
	}
	limit = e.limit(limit)

	counts := make(map[tags.Tag]int)
	for _, p := range e.ix.Presets() {
		combined := combinedTags(p)
		v, ok := combined.Get(key)
		if !ok || (value != "" && v != value && v != schema.Wildcard) {
			continue
		}
		for k, ov := range combined.All() {
			if k == key || !schema.IsLiteralValue(ov) {
				continue
			}
			counts[tags.Tag{Key: k, Value: ov}]++
		}
	}

	for t, n := range counts {
		out = append(out, RelatedTag{Key: t.Key, Value: t.Value, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return out[i].Value < out[j].Value
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// combinedTags merges a preset's tags with its addTags; tags win on conflict.
func combinedTags(p *schema.Preset) tags.Tags {
	var out tags.Tags
	for k, v := range p.Tags.All() {
		out.Set(k, v)
	}
	for k, v := range p.AddTags.All() {
		if !out.Has(k) {
			out.Set(k, v)
		}
	}
	return out
}
