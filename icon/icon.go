// Package icon renders the symbols printed next to command output.
package icon

import (
	"github.com/samber/lo"
	"github.com/soramod/soramod/key"
	"github.com/spf13/viper"
)

// Variant is a family of glyphs selected with the icons.variant setting.
type Variant string

const (
	Plain   Variant = "plain"
	Emoji   Variant = "emoji"
	Nerd    Variant = "nerd"
	Kaomoji Variant = "kaomoji"
	Squares Variant = "squares"
)

var variants = []Variant{Plain, Emoji, Nerd, Kaomoji, Squares}

// Names lists the accepted values of icons.variant.
func Names() []string {
	return lo.Map(variants, func(v Variant, _ int) string {
		return string(v)
	})
}

// Current returns the configured variant. Unknown values fall back to Plain.
func Current() Variant {
	v := Variant(viper.GetString(key.IconsVariant))
	if lo.Contains(variants, v) {
		return v
	}

	return Plain
}

// Get renders i with the configured variant.
func Get(i Icon) string {
	return Render(i, Current())
}

// Render returns the glyph of i for v, or its plain glyph when v has none.
func Render(i Icon, v Variant) string {
	g, ok := icons[i]
	if !ok {
		return ""
	}

	return lo.CoalesceOrEmpty(g[v], g[Plain])
}
