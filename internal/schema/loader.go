package schema

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strconv"

	"github.com/cespare/xxhash/v2"
	json "github.com/goccy/go-json"
	"github.com/valyala/fastjson"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/osmtags/internal/dataset"
	"github.com/standardbeagle/osmtags/internal/errors"
	"github.com/standardbeagle/osmtags/pkg/pathutil"
)

// Dataset file names, relative to the dataset root.
const (
	FieldsFile      = "fields.json"
	PresetsFile     = "presets.json"
	DeprecatedFile  = "deprecated.json"
	CategoriesFile  = "preset_categories.json"
	TranslationsDir = "translations"
	DefaultLocale   = "en"
)

// Source describes where a dataset is read from.
type Source struct {
	Name   string // reported in stats; a directory path or "embedded"
	FS     fs.FS
	Locale string
}

// EmbeddedSource returns the dataset compiled into the binary.
func EmbeddedSource(locale string) Source {
	return Source{Name: dataset.Name, FS: dataset.FS(), Locale: locale}
}

// DirSource returns a dataset read from an id-tagging-schema dist directory.
func DirSource(dir, locale string) Source {
	return Source{Name: dir, FS: os.DirFS(dir), Locale: locale}
}

// SourceFor picks the directory source when dir is set and the embedded one otherwise.
func SourceFor(dir, locale string) Source {
	if dir == "" {
		return EmbeddedSource(locale)
	}
	return DirSource(dir, locale)
}

// LocaleOrDefault returns the configured locale, "en" when unset.
func (s Source) LocaleOrDefault() string {
	if s.Locale == "" {
		return DefaultLocale
	}
	return s.Locale
}

func (s Source) cacheKey() string {
	return s.Name + "#" + s.LocaleOrDefault()
}

func (s Source) translationFile() string {
	return path.Join(TranslationsDir, s.LocaleOrDefault()+".json")
}

type rawFiles struct {
	fields       []byte
	presets      []byte
	deprecated   []byte
	categories   []byte
	translations []byte
}

// Load reads and indexes a dataset. The five files are read concurrently;
// categories and translations are optional.
func Load(ctx context.Context, src Source) (*Index, error) {
	if src.FS == nil {
		return nil, errors.NewDatasetError(src.Name, stderrors.New("no dataset filesystem"))
	}

	var raw rawFiles
	files := []struct {
		name     string
		required bool
		dst      *[]byte
	}{
		{FieldsFile, true, &raw.fields},
		{PresetsFile, true, &raw.presets},
		{DeprecatedFile, true, &raw.deprecated},
		{CategoriesFile, false, &raw.categories},
		{src.translationFile(), false, &raw.translations},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(src.FS, f.name)
			if err != nil {
				if !f.required && stderrors.Is(err, fs.ErrNotExist) {
					return nil
				}
				return errors.NewDatasetError(f.name, err)
			}
			*f.dst = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return build(src, &raw)
}

func build(src Source, raw *rawFiles) (*Index, error) {
	var errs []error

	fields, ferrs := decodeFields(raw.fields)
	errs = append(errs, ferrs...)
	presets, perrs := decodePresets(raw.presets)
	errs = append(errs, perrs...)
	deprecations, derrs := decodeDeprecations(raw.deprecated)
	errs = append(errs, derrs...)
	categories, cerrs := decodeCategories(raw.categories)
	errs = append(errs, cerrs...)
	translations, err := decodeTranslations(raw.translations, src.LocaleOrDefault())
	if err != nil {
		errs = append(errs, errors.NewDatasetError(src.translationFile(), err))
	}

	if err := errors.NewMultiError(errs).ErrOrNil(); err != nil {
		return nil, err
	}

	ix := newIndex(fields, presets, deprecations, categories)
	ix.source = src.Name
	ix.locale = src.LocaleOrDefault()
	ix.translations = translations
	ix.fingerprint = fingerprint(raw)
	return ix, nil
}

type entry struct {
	key string
	raw []byte
}

// orderedEntries walks a JSON object in document order. A single-key
// wrapper object such as {"presets": {...}} is unwrapped.
func orderedEntries(data []byte, wrapper string) ([]entry, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	obj, err := v.Object()
	if err != nil {
		return nil, err
	}
	if obj.Len() == 1 {
		if inner := obj.Get(wrapper); inner != nil && inner.Type() == fastjson.TypeObject {
			obj, _ = inner.Object()
		}
	}

	out := make([]entry, 0, obj.Len())
	obj.Visit(func(k []byte, v *fastjson.Value) {
		out = append(out, entry{key: string(k), raw: v.MarshalTo(nil)})
	})
	return out, nil
}

func decodeFields(data []byte) ([]*Field, []error) {
	entries, err := orderedEntries(data, "fields")
	if err != nil {
		return nil, []error{errors.NewDatasetError(FieldsFile, err)}
	}

	var errs []error
	fields := make([]*Field, 0, len(entries))
	for _, e := range entries {
		f := &Field{}
		if err := json.Unmarshal(e.raw, f); err != nil {
			errs = append(errs, errors.NewDatasetError(FieldsFile, err).WithEntry(e.key))
			continue
		}
		f.Path = e.key
		if f.Key == "" {
			f.Key = pathutil.ToOSMKey(e.key)
		}
		fields = append(fields, f)
	}
	return fields, errs
}

func decodePresets(data []byte) ([]*Preset, []error) {
	entries, err := orderedEntries(data, "presets")
	if err != nil {
		return nil, []error{errors.NewDatasetError(PresetsFile, err)}
	}

	var errs []error
	presets := make([]*Preset, 0, len(entries))
	for _, e := range entries {
		p := &Preset{}
		if err := json.Unmarshal(e.raw, p); err != nil {
			errs = append(errs, errors.NewDatasetError(PresetsFile, err).WithEntry(e.key))
			continue
		}
		p.ID = e.key
		presets = append(presets, p)
	}
	return presets, errs
}

func decodeDeprecations(data []byte) ([]Deprecation, []error) {
	var records []Deprecation
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, []error{errors.NewDatasetError(DeprecatedFile, err)}
	}

	var errs []error
	out := records[:0]
	for i, r := range records {
		if r.Old.Len() == 0 {
			errs = append(errs, errors.NewDatasetError(DeprecatedFile,
				stderrors.New("record has no old tags")).WithEntry(strconv.Itoa(i)))
			continue
		}
		out = append(out, r)
	}
	return out, errs
}

func decodeCategories(data []byte) ([]*Category, []error) {
	if data == nil {
		return nil, nil
	}
	entries, err := orderedEntries(data, "categories")
	if err != nil {
		return nil, []error{errors.NewDatasetError(CategoriesFile, err)}
	}

	var errs []error
	categories := make([]*Category, 0, len(entries))
	for _, e := range entries {
		c := &Category{}
		if err := json.Unmarshal(e.raw, c); err != nil {
			errs = append(errs, errors.NewDatasetError(CategoriesFile, err).WithEntry(e.key))
			continue
		}
		c.ID = e.key
		categories = append(categories, c)
	}
	return categories, errs
}

func decodeTranslations(data []byte, locale string) (map[string]*Translations, error) {
	out := make(map[string]*Translations)
	if data == nil {
		return out, nil
	}
	var file localeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	for loc, bundle := range file {
		t := bundle.Presets
		out[loc] = &t
	}
	if _, ok := out[locale]; !ok {
		return nil, fmt.Errorf("no %q section in translation file", locale)
	}
	return out, nil
}

// fingerprint hashes the raw dataset files in a fixed order.
func fingerprint(raw *rawFiles) string {
	d := xxhash.New()
	for _, part := range [][]byte{raw.fields, raw.presets, raw.deprecated, raw.categories, raw.translations} {
		_, _ = d.Write(part)
		_, _ = d.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
