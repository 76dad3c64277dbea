package images

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// tableau is the default matplotlib color cycle, addressable as "tab:<name>"
// or by position as "C0".."C9"
var tableau = []struct {
	name string
	hex  string
}{
	{"blue", "#1f77b4"},
	{"orange", "#ff7f0e"},
	{"green", "#2ca02c"},
	{"red", "#d62728"},
	{"purple", "#9467bd"},
	{"brown", "#8c564b"},
	{"pink", "#e377c2"},
	{"gray", "#7f7f7f"},
	{"olive", "#bcbd22"},
	{"cyan", "#17becf"},
}

// ParseColor resolves a CSS/SVG color name ("red", "steelblue"), a
// single-letter shorthand ("r", "k"), a tableau color ("tab:orange", "C1") or
// a hex string ("#ff0000", "#f00", with optional alpha digits) to an opaque
// RGBA color. Alpha is ignored.
func ParseColor(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return color.RGBA{}, fmt.Errorf("empty color")
	}

	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}

	// single-letter matplotlib shorthands
	switch name {
	case "k":
		return colornames.Black, nil
	case "w":
		return colornames.White, nil
	case "r":
		return color.RGBA{R: 255, A: 255}, nil
	case "g":
		return color.RGBA{G: 128, A: 255}, nil
	case "b":
		return color.RGBA{B: 255, A: 255}, nil
	case "c":
		return color.RGBA{G: 191, B: 191, A: 255}, nil
	case "m":
		return color.RGBA{R: 191, B: 191, A: 255}, nil
	case "y":
		return color.RGBA{R: 191, G: 191, A: 255}, nil
	}

	if tab, ok := strings.CutPrefix(name, "tab:"); ok {
		if tab == "grey" {
			tab = "gray"
		}
		for _, c := range tableau {
			if c.name == tab {
				return parseHex(c.hex, s)
			}
		}
		return color.RGBA{}, fmt.Errorf("unknown tableau color %q", s)
	}

	if len(name) == 2 && name[0] == 'c' && name[1] >= '0' && name[1] <= '9' {
		return parseHex(tableau[name[1]-'0'].hex, s)
	}

	if !strings.HasPrefix(name, "#") {
		return color.RGBA{}, fmt.Errorf("unknown color %q", s)
	}
	return parseHex(name, s)
}

// parseHex reads #rgb, #rgba, #rrggbb or #rrggbbaa; orig is used in errors
func parseHex(name, orig string) (color.RGBA, error) {
	hex := strings.TrimPrefix(name, "#")
	if len(hex) == 3 || len(hex) == 4 {
		expanded := make([]byte, 0, len(hex)*2)
		for i := 0; i < len(hex); i++ {
			expanded = append(expanded, hex[i], hex[i])
		}
		hex = string(expanded)
	}
	if len(hex) == 8 {
		hex = hex[:6]
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", orig)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", orig, err)
	}

	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// Hex renders c as "#rrggbb"
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
