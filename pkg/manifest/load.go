package manifest

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/segviz/segviz/pkg/errors"
	"github.com/segviz/segviz/pkg/palette"
)

// Option configures a Load call.
type Option func(*loadOptions)

type loadOptions struct {
	format    Format
	palette   *palette.Palette
	onWarning func(Warning)
}

// WithFormat sets the document encoding. Load defaults to JSON; LoadFile
// detects the encoding from the file extension.
func WithFormat(f Format) Option {
	return func(o *loadOptions) { o.format = f }
}

// WithPalette supplies the palette used to resolve named colors. The
// palette is an explicit input on every call; the loader keeps no
// process-wide color state. Defaults to palette.Default().
func WithPalette(p *palette.Palette) Option {
	return func(o *loadOptions) { o.palette = p }
}

// WithWarnings registers a callback for load warnings. The callback fires
// after a successful load, once per warning in document order; warnings
// are also recorded on the returned manifest.
func WithWarnings(fn func(Warning)) Option {
	return func(o *loadOptions) { o.onWarning = fn }
}

// Load parses and validates a manifest document.
//
// Load is a pure, synchronous transform over a complete input: no I/O, no
// retries, no partial results. On failure the returned error is a
// *errors.Error whose code identifies the failure class and whose path
// points at the offending document key. Validation is all-or-nothing; a
// manifest is only returned when every check passed and every declared
// parameter resolved.
//
// Unrecognized keys are not errors: they are collected as warnings so
// documents written against a newer schema revision still load.
func Load(data []byte, opts ...Option) (*SceneManifest, error) {
	o := loadOptions{format: FormatJSON}
	for _, opt := range opts {
		opt(&o)
	}
	if o.palette == nil {
		o.palette = palette.Default()
	}

	raw, err := decodeTree(data, o.format)
	if err != nil {
		return nil, err
	}

	b := builder{opts: o}
	m, err := b.build(raw)
	if err != nil {
		return nil, err
	}
	if err := validate(m); err != nil {
		return nil, err
	}
	if err := resolve(m); err != nil {
		return nil, err
	}

	m.warnings = b.warnings
	if o.onWarning != nil {
		for _, w := range m.warnings {
			o.onWarning(w)
		}
	}
	return m, nil
}

// LoadFile reads and loads a manifest from disk, detecting the encoding
// from the file extension.
func LoadFile(path string, opts ...Option) (*SceneManifest, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read manifest %s", path)
	}
	return Load(data, append([]Option{WithFormat(format)}, opts...)...)
}

// LoadReader reads and loads a manifest from a reader.
func LoadReader(r io.Reader, opts ...Option) (*SceneManifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read manifest")
	}
	return Load(data, opts...)
}

// ===== Document structure =====

// Top-level keys the loader recognizes.
var knownTopLevelKeys = map[string]bool{
	"title":             true,
	"files":             true,
	"tissues":           true,
	"figures":           true,
	"tissue_parameters": true,
}

// Keys recognized under tissues.
var knownTissueKeys = map[string]bool{
	"names":       true,
	"indices":     true,
	"colors":      true,
	"orientation": true,
	"opacity":     true,
}

// Keys under tissue_parameters that are not tissue override sets.
const (
	keyParameterTypes = "parameter_types"
	keyDefault        = "default"
)

type builder struct {
	opts     loadOptions
	warnings []Warning
}

func (b *builder) warn(path, format string, args ...any) {
	b.warnings = append(b.warnings, Warning{Path: path, Message: fmt.Sprintf(format, args...)})
}

// build turns the decoded tree into a typed manifest. It checks shape
// (field kinds, literal types against the declared schema) and leaves
// cross-references, uniqueness, and ranges to validate.
func (b *builder) build(raw map[string]any) (*SceneManifest, error) {
	m := &SceneManifest{
		Figures: map[string][]string{},
		Variant: VariantVolume,
	}

	rawTitle, ok := raw["title"]
	if !ok {
		return nil, errors.NewAt(errors.ErrCodeMissingRequiredField, "title", "manifest requires a title")
	}
	title, ok := asString(rawTitle)
	if !ok {
		return nil, errors.NewAt(errors.ErrCodeMalformedDocument, "title", "expected text, got %s", typeName(rawTitle))
	}
	m.Title = title

	rawFiles, ok := raw["files"]
	if !ok {
		return nil, errors.NewAt(errors.ErrCodeMissingRequiredField, "files", "manifest requires a files list")
	}
	files, ok := asStringSlice(rawFiles)
	if !ok {
		return nil, errors.NewAt(errors.ErrCodeMalformedDocument, "files", "expected a list of file paths, got %s", typeName(rawFiles))
	}
	m.Files = files

	if v, ok := raw["tissues"]; ok {
		if err := b.buildTissues(m, v); err != nil {
			return nil, err
		}
	}

	if v, ok := raw["figures"]; ok {
		if err := b.buildFigures(m, v); err != nil {
			return nil, err
		}
	}

	if v, ok := raw["tissue_parameters"]; ok {
		if err := b.buildSchema(m, v); err != nil {
			return nil, err
		}
	}

	for _, k := range sortedKeys(raw) {
		if !knownTopLevelKeys[k] {
			b.warn(k, "unrecognized key")
		}
	}

	return m, nil
}

func (b *builder) buildTissues(m *SceneManifest, v any) error {
	tm, ok := asMap(v)
	if !ok {
		return errors.NewAt(errors.ErrCodeMalformedDocument, "tissues", "expected mapping, got %s", typeName(v))
	}

	// The variant is decided by which keys carry the tissue list: an
	// explicit names list (volume layout) or the color map's keys
	// (surface layout). Everything after this point is shared.
	var names []string
	if rawNames, hasNames := tm["names"]; hasNames {
		names, ok = asStringSlice(rawNames)
		if !ok {
			return errors.NewAt(errors.ErrCodeMalformedDocument, "tissues.names", "expected a list of tissue names, got %s", typeName(rawNames))
		}
		m.Variant = VariantVolume
	} else {
		rawColors, hasColors := tm["colors"]
		if !hasColors {
			return errors.NewAt(errors.ErrCodeMalformedDocument, "tissues", "tissues requires a names list or a colors map")
		}
		cm, ok := asMap(rawColors)
		if !ok {
			return errors.NewAt(errors.ErrCodeMalformedDocument, "tissues.colors", "expected mapping, got %s", typeName(rawColors))
		}
		names = sortedKeys(cm)
		m.Variant = VariantSurface
	}

	seen := make(map[string]bool, len(names))
	m.Tissues = make([]Tissue, 0, len(names))
	for _, name := range names {
		if err := errors.ValidateTissueName(name); err != nil {
			return errors.NewAt(errors.ErrCodeMalformedDocument, "tissues.names", "%s", errors.UserMessage(err))
		}
		if seen[name] {
			return errors.NewAt(errors.ErrCodeMalformedDocument, "tissues.names", "duplicate tissue name %q", name)
		}
		seen[name] = true
		m.Tissues = append(m.Tissues, Tissue{Name: name})
	}

	tissueAt := func(name string) *Tissue {
		for i := range m.Tissues {
			if m.Tissues[i].Name == name {
				return &m.Tissues[i]
			}
		}
		return nil
	}

	if rawIndices, ok := tm["indices"]; ok {
		im, ok := asMap(rawIndices)
		if !ok {
			return errors.NewAt(errors.ErrCodeMalformedDocument, "tissues.indices", "expected mapping, got %s", typeName(rawIndices))
		}
		for _, name := range sortedKeys(im) {
			path := "tissues.indices." + name
			t := tissueAt(name)
			if t == nil {
				return errors.NewAt(errors.ErrCodeUnknownTissueRef, path, "unknown tissue %q", name)
			}
			i, ok := asInt(im[name])
			if !ok {
				return errors.NewAt(errors.ErrCodeMalformedDocument, path, "expected integer index, got %s", typeName(im[name]))
			}
			idx := int(i)
			t.Index = &idx
		}
	}

	if rawColors, ok := tm["colors"]; ok {
		cm, ok := asMap(rawColors)
		if !ok {
			return errors.NewAt(errors.ErrCodeMalformedDocument, "tissues.colors", "expected mapping, got %s", typeName(rawColors))
		}
		for _, name := range sortedKeys(cm) {
			path := "tissues.colors." + name
			t := tissueAt(name)
			if t == nil {
				return errors.NewAt(errors.ErrCodeUnknownTissueRef, path, "unknown tissue %q", name)
			}
			c, err := b.parseColor(cm[name], path)
			if err != nil {
				return err
			}
			t.Color = c
		}
	}

	if rawOrient, ok := tm["orientation"]; ok {
		om, ok := asMap(rawOrient)
		if !ok {
			return errors.NewAt(errors.ErrCodeMalformedDocument, "tissues.orientation", "expected mapping, got %s", typeName(rawOrient))
		}
		for _, name := range sortedKeys(om) {
			path := "tissues.orientation." + name
			t := tissueAt(name)
			if t == nil {
				return errors.NewAt(errors.ErrCodeUnknownTissueRef, path, "unknown tissue %q", name)
			}
			o, err := parseOrientation(om[name], path)
			if err != nil {
				return err
			}
			t.Orientation = o
		}
	}

	if rawOpacity, ok := tm["opacity"]; ok {
		om, ok := asMap(rawOpacity)
		if !ok {
			return errors.NewAt(errors.ErrCodeMalformedDocument, "tissues.opacity", "expected mapping, got %s", typeName(rawOpacity))
		}
		for _, name := range sortedKeys(om) {
			path := "tissues.opacity." + name
			t := tissueAt(name)
			if t == nil {
				return errors.NewAt(errors.ErrCodeUnknownTissueRef, path, "unknown tissue %q", name)
			}
			f, ok := asFloat(om[name])
			if !ok {
				return errors.NewAt(errors.ErrCodeMalformedDocument, path, "expected opacity in [0,1], got %s", typeName(om[name]))
			}
			t.Opacity = &f
		}
	}

	for _, k := range sortedKeys(tm) {
		if !knownTissueKeys[k] {
			b.warn("tissues."+k, "unrecognized key")
		}
	}

	return nil
}

// parseColor accepts a palette name, a hex literal, or a numeric
// triple/quad with components in [0, 1].
func (b *builder) parseColor(v any, path string) (*palette.RGBA, error) {
	if s, ok := asString(v); ok {
		c, err := b.opts.palette.Parse(s)
		if err != nil {
			return nil, errors.NewAt(errors.GetCode(err), path, "%s", errors.UserMessage(err))
		}
		return &c, nil
	}

	comps, ok := asFloatSlice(v)
	if !ok {
		return nil, errors.NewAt(errors.ErrCodeMalformedDocument, path, "expected color name or numeric components, got %s", typeName(v))
	}
	switch len(comps) {
	case 3:
		c := palette.RGB(comps[0], comps[1], comps[2])
		return &c, nil
	case 4:
		c := palette.RGBA{R: comps[0], G: comps[1], B: comps[2], A: comps[3]}
		return &c, nil
	default:
		return nil, errors.NewAt(errors.ErrCodeMalformedDocument, path, "expected 3 or 4 color components, got %d", len(comps))
	}
}

// parseOrientation accepts a preset name or a numeric angle in degrees.
// Preset membership is checked during validation.
func parseOrientation(v any, path string) (*Orientation, error) {
	if s, ok := asString(v); ok {
		return &Orientation{Preset: s}, nil
	}
	if f, ok := asFloat(v); ok {
		return &Orientation{Angle: f, Numeric: true}, nil
	}
	return nil, errors.NewAt(errors.ErrCodeMalformedDocument, path, "expected orientation preset or angle, got %s", typeName(v))
}

func (b *builder) buildFigures(m *SceneManifest, v any) error {
	fm, ok := asMap(v)
	if !ok {
		return errors.NewAt(errors.ErrCodeMalformedDocument, "figures", "expected mapping, got %s", typeName(v))
	}

	for _, name := range sortedKeys(fm) {
		path := "figures." + name
		if err := errors.ValidateFigureName(name); err != nil {
			return errors.NewAt(errors.ErrCodeMalformedDocument, path, "%s", errors.UserMessage(err))
		}
		members, ok := asStringSlice(fm[name])
		if !ok {
			return errors.NewAt(errors.ErrCodeMalformedDocument, path, "expected a list of tissue names, got %s", typeName(fm[name]))
		}
		m.Figures[name] = members
	}

	return nil
}

func (b *builder) buildSchema(m *SceneManifest, v any) error {
	pm, ok := asMap(v)
	if !ok {
		return errors.NewAt(errors.ErrCodeMalformedDocument, "tissue_parameters", "expected mapping, got %s", typeName(v))
	}

	rawTypes, ok := pm[keyParameterTypes]
	if !ok {
		return errors.NewAt(errors.ErrCodeMissingRequiredField, "tissue_parameters.parameter_types", "tissue_parameters requires parameter_types")
	}
	tm, ok := asMap(rawTypes)
	if !ok {
		return errors.NewAt(errors.ErrCodeMalformedDocument, "tissue_parameters.parameter_types", "expected mapping, got %s", typeName(rawTypes))
	}

	schema := &ParameterSchema{
		Types:     make(map[string]ParamType, len(tm)),
		Defaults:  ParameterSet{},
		Overrides: map[string]ParameterSet{},
	}

	for _, name := range sortedKeys(tm) {
		path := "tissue_parameters.parameter_types." + name
		if err := errors.ValidateParameterName(name); err != nil {
			return errors.NewAt(errors.ErrCodeMalformedDocument, path, "%s", errors.UserMessage(err))
		}
		typeStr, ok := asString(tm[name])
		if !ok {
			return errors.NewAt(errors.ErrCodeMalformedDocument, path, "expected type name, got %s", typeName(tm[name]))
		}
		t, ok := ParseParamType(typeStr)
		if !ok {
			return errors.NewAt(errors.ErrCodeMalformedDocument, path, "unknown parameter type %q (valid: integer, float, text, boolean)", typeStr)
		}
		schema.Types[name] = t
	}

	if rawDefault, ok := pm[keyDefault]; ok {
		set, err := b.buildParameterSet(schema, rawDefault, "tissue_parameters.default")
		if err != nil {
			return err
		}
		schema.Defaults = set
	}

	for _, name := range sortedKeys(pm) {
		if name == keyParameterTypes || name == keyDefault {
			continue
		}
		// Every other key is a per-tissue override set; whether the name
		// refers to a declared tissue is checked during validation.
		set, err := b.buildParameterSet(schema, pm[name], "tissue_parameters."+name)
		if err != nil {
			return err
		}
		schema.Overrides[name] = set
	}

	m.Schema = schema
	return nil
}

// buildParameterSet type-checks a default or override block against the
// declared parameter types.
func (b *builder) buildParameterSet(schema *ParameterSchema, v any, path string) (ParameterSet, error) {
	sm, ok := asMap(v)
	if !ok {
		return nil, errors.NewAt(errors.ErrCodeMalformedDocument, path, "expected mapping, got %s", typeName(v))
	}

	set := make(ParameterSet, len(sm))
	for _, param := range sortedKeys(sm) {
		paramPath := path + "." + param
		t, ok := schema.Types[param]
		if !ok {
			return nil, errors.NewAt(errors.ErrCodeTypeMismatch, paramPath, "parameter %q not declared in parameter_types", param)
		}
		val, err := coerceValue(sm[param], t, paramPath)
		if err != nil {
			return nil, err
		}
		set[param] = val
	}
	return set, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
