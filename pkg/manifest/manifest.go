// Package manifest loads scene manifests: structured descriptions of
// segmented-anatomy visualization scenes.
//
// A manifest names the scene (title), lists the input data files, declares
// the tissues present in the segmentation with their visual attributes
// (index, color, orientation, opacity), groups tissues into named figures,
// and optionally declares a typed tissue-parameter schema with shared
// defaults and per-tissue overrides.
//
// Load is a pure, synchronous transform: it decodes a complete document
// (JSON, YAML, or TOML), validates it, and returns an immutable
// SceneManifest together with fully resolved per-tissue parameter tables.
// Validation is all-or-nothing; on failure no partial manifest is
// returned, and the error carries a machine-readable code plus the path of
// the offending document key.
//
// # Schema Variants
//
// Two manifest layouts exist in the wild, reflecting the two segmentation
// data formats they accompany. The volume variant lists tissue names
// explicitly and styles them through sibling maps:
//
//	{
//	  "title": "The Visible Frog",
//	  "files": ["frog.mhd"],
//	  "tissues": {
//	    "names": ["skin", "skeleton"],
//	    "indices": {"skin": 1, "skeleton": 2},
//	    "colors": {"skin": "flesh", "skeleton": [1, 1, 0.94]},
//	    "opacity": {"skin": 0.4}
//	  }
//	}
//
// The surface variant carries only a color map; the tissue list is derived
// from its keys. Load detects the variant by the presence of the names
// key and records it on the manifest.
package manifest

import (
	"encoding/json"
	"slices"
	"strconv"

	"github.com/segviz/segviz/pkg/palette"
)

// Variant identifies which manifest layout a document used.
type Variant string

// Manifest layout variants.
const (
	// VariantVolume is the layout used alongside volumetric segmentations:
	// an explicit tissue name list with styling sub-maps.
	VariantVolume Variant = "volume"
	// VariantSurface is the layout used alongside surface meshes: a bare
	// color map whose keys double as the tissue list.
	VariantSurface Variant = "surface"
)

// Orientation presets. The viewing planes name a slice orientation;
// the two-letter presets name a viewing direction between anatomical
// landmarks (anterior-posterior, left-right, superior-inferior and
// their reverses).
const (
	OrientationAxial    = "axial"
	OrientationCoronal  = "coronal"
	OrientationSagittal = "sagittal"

	OrientationAP = "ap"
	OrientationPA = "pa"
	OrientationLR = "lr"
	OrientationRL = "rl"
	OrientationSI = "si"
	OrientationIS = "is"
)

// ValidOrientationPresets enumerates the accepted orientation preset names.
var ValidOrientationPresets = map[string]bool{
	OrientationAxial:    true,
	OrientationCoronal:  true,
	OrientationSagittal: true,
	OrientationAP:       true,
	OrientationPA:       true,
	OrientationLR:       true,
	OrientationRL:       true,
	OrientationSI:       true,
	OrientationIS:       true,
}

// Orientation is a viewing orientation: either an anatomical preset or a
// numeric rotation angle in degrees. Numeric reports which form the
// document used.
type Orientation struct {
	Preset  string
	Angle   float64
	Numeric bool
}

// String renders the orientation the way a document would spell it.
func (o Orientation) String() string {
	if o.Numeric {
		return strconv.FormatFloat(o.Angle, 'g', -1, 64)
	}
	return o.Preset
}

// MarshalJSON encodes the orientation in its document form: a preset
// name or a bare angle.
func (o Orientation) MarshalJSON() ([]byte, error) {
	if o.Numeric {
		return json.Marshal(o.Angle)
	}
	return json.Marshal(o.Preset)
}

// Tissue is a named entity with visual attributes used to style the
// corresponding geometry. All attributes beyond the name are optional;
// nil means the document did not set them.
type Tissue struct {
	Name        string
	Index       *int
	Color       *palette.RGBA
	Orientation *Orientation
	Opacity     *float64
}

// Warning describes a non-fatal oddity found while loading, such as an
// unrecognized key kept for forward compatibility.
type Warning struct {
	Path    string // Dotted key path into the source document
	Message string
}

// SceneManifest is the loaded, validated scene description. It is built
// once by Load and must be treated as read-only from then on; accessors
// return internal state without copying.
type SceneManifest struct {
	Title   string
	Files   []string            // Input data files, in document order
	Tissues []Tissue            // Declared tissues, in document order
	Figures map[string][]string // Figure name to member tissue names
	Schema  *ParameterSchema    // nil when the document has no tissue_parameters
	Variant Variant

	resolved map[string]ParameterSet
	warnings []Warning
}

// TissueNames returns the tissue names in document order.
func (m *SceneManifest) TissueNames() []string {
	names := make([]string, len(m.Tissues))
	for i, t := range m.Tissues {
		names[i] = t.Name
	}
	return names
}

// TissueByName finds a declared tissue by name.
func (m *SceneManifest) TissueByName(name string) (Tissue, bool) {
	for _, t := range m.Tissues {
		if t.Name == name {
			return t, true
		}
	}
	return Tissue{}, false
}

// FigureNames returns the figure names in sorted order.
func (m *SceneManifest) FigureNames() []string {
	names := make([]string, 0, len(m.Figures))
	for k := range m.Figures {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Figure returns the tissue names of a figure group, in document order.
func (m *SceneManifest) Figure(name string) ([]string, bool) {
	tissues, ok := m.Figures[name]
	return tissues, ok
}

// ResolvedParameters returns the resolved parameter table for a tissue:
// its override set merged over the schema defaults. ok is false for
// undeclared tissues. Without a schema every declared tissue resolves to
// an empty table.
func (m *SceneManifest) ResolvedParameters(name string) (ParameterSet, bool) {
	ps, ok := m.resolved[name]
	return ps, ok
}

// Warnings returns the warnings collected during load.
func (m *SceneManifest) Warnings() []Warning {
	return m.warnings
}

// Equal reports whether two manifests describe the same scene. Derived
// state (resolved tables) and warnings are excluded: they are functions of
// the declarative content.
func Equal(a, b *SceneManifest) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Title != b.Title || a.Variant != b.Variant {
		return false
	}
	if !slices.Equal(a.Files, b.Files) {
		return false
	}
	if len(a.Tissues) != len(b.Tissues) {
		return false
	}
	for i := range a.Tissues {
		if !tissueEqual(a.Tissues[i], b.Tissues[i]) {
			return false
		}
	}
	if len(a.Figures) != len(b.Figures) {
		return false
	}
	for k, v := range a.Figures {
		ov, ok := b.Figures[k]
		if !ok || !slices.Equal(v, ov) {
			return false
		}
	}
	return a.Schema.Equal(b.Schema)
}

func tissueEqual(a, b Tissue) bool {
	if a.Name != b.Name {
		return false
	}
	if (a.Index == nil) != (b.Index == nil) {
		return false
	}
	if a.Index != nil && *a.Index != *b.Index {
		return false
	}
	if (a.Color == nil) != (b.Color == nil) {
		return false
	}
	if a.Color != nil && *a.Color != *b.Color {
		return false
	}
	if (a.Orientation == nil) != (b.Orientation == nil) {
		return false
	}
	if a.Orientation != nil && *a.Orientation != *b.Orientation {
		return false
	}
	if (a.Opacity == nil) != (b.Opacity == nil) {
		return false
	}
	if a.Opacity != nil && *a.Opacity != *b.Opacity {
		return false
	}
	return true
}
