package manifest

import (
	"slices"

	"github.com/segviz/segviz/pkg/errors"
)

// validate checks the invariants that span the whole document: reference
// integrity, index uniqueness, and value ranges. It runs after build, so
// every field already has its declared shape.
func validate(m *SceneManifest) error {
	declared := make(map[string]bool, len(m.Tissues))
	for _, t := range m.Tissues {
		declared[t.Name] = true
	}

	// Indices must be unique across tissues.
	byIndex := make(map[int]string, len(m.Tissues))
	for _, t := range m.Tissues {
		if t.Index == nil {
			continue
		}
		if prev, ok := byIndex[*t.Index]; ok {
			return errors.NewAt(errors.ErrCodeDuplicateIndex, "tissues.indices."+t.Name,
				"index %d already used by %q", *t.Index, prev)
		}
		byIndex[*t.Index] = t.Name
	}

	// Opacity in [0,1]; color components in [0,1]; orientation presets
	// from the anatomical set.
	for _, t := range m.Tissues {
		if t.Opacity != nil && (*t.Opacity < 0 || *t.Opacity > 1) {
			return errors.NewAt(errors.ErrCodeValueOutOfRange, "tissues.opacity."+t.Name,
				"opacity %g outside [0,1]", *t.Opacity)
		}
		if t.Color != nil && !t.Color.InRange() {
			return errors.NewAt(errors.ErrCodeValueOutOfRange, "tissues.colors."+t.Name,
				"color components outside [0,1]")
		}
		if t.Orientation != nil && !t.Orientation.Numeric && !ValidOrientationPresets[t.Orientation.Preset] {
			return errors.NewAt(errors.ErrCodeValueOutOfRange, "tissues.orientation."+t.Name,
				"unknown orientation preset %q (valid: axial, coronal, sagittal, ap, pa, lr, rl, si, is)", t.Orientation.Preset)
		}
	}

	// Every figure member must be a declared tissue.
	for _, name := range m.FigureNames() {
		for _, member := range m.Figures[name] {
			if !declared[member] {
				return errors.NewAt(errors.ErrCodeUnknownTissueRef, "figures."+name,
					"unknown tissue %q", member)
			}
		}
	}

	// Every override set must belong to a declared tissue.
	if m.Schema != nil {
		overrideNames := make([]string, 0, len(m.Schema.Overrides))
		for name := range m.Schema.Overrides {
			overrideNames = append(overrideNames, name)
		}
		slices.Sort(overrideNames)
		for _, name := range overrideNames {
			if !declared[name] {
				return errors.NewAt(errors.ErrCodeUnknownTissueRef, "tissue_parameters."+name,
					"unknown tissue %q", name)
			}
		}
	}

	return nil
}

// resolve computes the per-tissue parameter tables: the tissue's override
// merged over the schema defaults, for every declared parameter and every
// declared tissue. A parameter with neither an override nor a default
// cannot resolve and fails the load.
func resolve(m *SceneManifest) error {
	m.resolved = make(map[string]ParameterSet, len(m.Tissues))

	if m.Schema == nil {
		for _, t := range m.Tissues {
			m.resolved[t.Name] = ParameterSet{}
		}
		return nil
	}

	params := m.Schema.ParamNames()
	for _, t := range m.Tissues {
		set := make(ParameterSet, len(params))
		overrides := m.Schema.Overrides[t.Name]
		for _, param := range params {
			if v, ok := overrides[param]; ok {
				set[param] = v
				continue
			}
			if v, ok := m.Schema.Defaults[param]; ok {
				set[param] = v
				continue
			}
			return errors.NewAt(errors.ErrCodeMissingParameterValue,
				"tissue_parameters."+t.Name+"."+param,
				"parameter %q has no override for %q and no default", param, t.Name)
		}
		m.resolved[t.Name] = set
	}

	return nil
}
