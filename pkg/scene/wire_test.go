package scene

import (
	"reflect"
	"testing"

	"github.com/segviz/segviz/pkg/errors"
	"github.com/segviz/segviz/pkg/manifest"
)

const wireDoc = `{
	"title": "Surfaces",
	"files": ["head.vti"],
	"tissues": {
		"names": ["bone", "muscle"],
		"indices": {"bone": 4, "muscle": 5},
		"colors": {"bone": [1, 1, 0.9], "muscle": [0.8, 0.2, 0.2, 0.5]},
		"orientation": {"bone": "coronal", "muscle": 42.5},
		"opacity": {"muscle": 0.75}
	},
	"figures": {},
	"tissue_parameters": {
		"parameter_types": {
			"density": "float",
			"label": "text",
			"priority": "integer",
			"smooth": "boolean"
		},
		"default": {"density": 1.0, "label": "soft", "priority": 2, "smooth": true},
		"bone": {"density": 3, "label": "hard", "smooth": false}
	}
}`

func TestAssemblyWireRoundTrip(t *testing.T) {
	m := loadManifest(t, wireDoc)
	asm, err := Assemble(m)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	data, err := MarshalAssembly(asm)
	if err != nil {
		t.Fatalf("MarshalAssembly() error: %v", err)
	}
	back, err := UnmarshalAssembly(data)
	if err != nil {
		t.Fatalf("UnmarshalAssembly() error: %v", err)
	}

	if !reflect.DeepEqual(asm, back) {
		t.Errorf("round trip drifted:\n got %+v\nwant %+v", back, asm)
	}
}

func TestAssemblyWirePreservesValueTypes(t *testing.T) {
	m := loadManifest(t, wireDoc)
	asm, err := Assemble(m)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	data, err := MarshalAssembly(asm)
	if err != nil {
		t.Fatalf("MarshalAssembly() error: %v", err)
	}
	back, err := UnmarshalAssembly(data)
	if err != nil {
		t.Fatalf("UnmarshalAssembly() error: %v", err)
	}

	// Muscle takes the defaults: density declared float with an integral
	// payload must stay a float through the wire.
	var muscle *Prop
	for i := range back.Props {
		if back.Props[i].Tissue == "muscle" {
			muscle = &back.Props[i]
		}
	}
	if muscle == nil {
		t.Fatal("muscle prop missing")
	}

	density, ok := muscle.Parameters.Get("density")
	if !ok || density.Type() != manifest.TypeFloat {
		t.Errorf("density type = %v, want float", density.Type())
	}
	priority, ok := muscle.Parameters.Get("priority")
	if !ok || priority.Type() != manifest.TypeInteger {
		t.Errorf("priority type = %v, want integer", priority.Type())
	}
	if v, _ := priority.AsInt(); v != 2 {
		t.Errorf("priority = %d, want 2", v)
	}
	if label, _ := muscle.Parameters.Get("label"); label != manifest.Text("soft") {
		t.Errorf("label = %v, want soft", label)
	}
	if smooth, _ := muscle.Parameters.Get("smooth"); smooth != manifest.Bool(true) {
		t.Errorf("smooth = %v, want true", smooth)
	}
}

func TestAssemblyWirePreservesOrientation(t *testing.T) {
	m := loadManifest(t, wireDoc)
	asm, err := Assemble(m)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	data, _ := MarshalAssembly(asm)
	back, err := UnmarshalAssembly(data)
	if err != nil {
		t.Fatalf("UnmarshalAssembly() error: %v", err)
	}

	bone := back.Props[0]
	if bone.Orientation == nil || bone.Orientation.Preset != "coronal" || bone.Orientation.Numeric {
		t.Errorf("bone orientation = %+v, want coronal preset", bone.Orientation)
	}
	muscle := back.Props[1]
	if muscle.Orientation == nil || !muscle.Orientation.Numeric || muscle.Orientation.Angle != 42.5 {
		t.Errorf("muscle orientation = %+v, want numeric 42.5", muscle.Orientation)
	}
	if muscle.Color.A != 0.5 {
		t.Errorf("muscle alpha = %v, want 0.5 preserved exactly", muscle.Color.A)
	}
}

func TestUnmarshalAssemblyErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"garbage", "{not json"},
		{"bad color arity", `{"title":"x","files":[],"props":[{"file":"f","tissue":"t","color":[1,2]}]}`},
		{"unknown value type", `{"title":"x","files":[],"props":[{"file":"f","tissue":"t","color":[0,0,0],
			"parameters":{"p":{"type":"decimal","value":1}}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalAssembly([]byte(tt.data))
			if errors.GetCode(err) != errors.ErrCodeMalformedDocument {
				t.Errorf("code = %v, want MALFORMED_DOCUMENT", errors.GetCode(err))
			}
		})
	}
}
