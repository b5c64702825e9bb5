package render

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
)

// ToPNG converts SVG bytes to PNG at the given scale factor.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1.0
	}
	return convert(svg, "--format=png", "--zoom="+strconv.FormatFloat(scale, 'f', -1, 64))
}

// ToPDF converts SVG bytes to PDF.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "--format=pdf")
}

func convert(svg []byte, args ...string) ([]byte, error) {
	bin, err := exec.LookPath("rsvg-convert")
	if err != nil {
		return nil, fmt.Errorf("rsvg-convert not found: install librsvg (brew install librsvg / apt install librsvg2-bin)")
	}

	cmd := exec.Command(bin, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return nil, fmt.Errorf("rsvg-convert: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("rsvg-convert: %w", err)
	}
	return out.Bytes(), nil
}
