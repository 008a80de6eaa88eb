package net_structures

import (
	"fmt"
	"strings"
)

// TODO: support hex codes in ColorCodes/MiniMessage output, not just ANSI.

// textColorANSI maps a vanilla color name to its 16-color ANSI escape.
var textColorANSI = map[string]string{
	"black":        "\033[30m",
	"dark_blue":    "\033[34m",
	"dark_green":   "\033[32m",
	"dark_aqua":    "\033[36m",
	"dark_red":     "\033[31m",
	"dark_purple":  "\033[35m",
	"gold":         "\033[33m",
	"gray":         "\033[37m",
	"dark_gray":    "\033[90m",
	"blue":         "\033[94m",
	"green":        "\033[92m",
	"aqua":         "\033[96m",
	"red":          "\033[91m",
	"light_purple": "\033[95m",
	"yellow":       "\033[93m",
	"white":        "\033[97m",
}

// textColorSection maps a vanilla color name to its legacy §-code.
var textColorSection = map[string]string{
	"black":        "§0",
	"dark_blue":    "§1",
	"dark_green":   "§2",
	"dark_aqua":    "§3",
	"dark_red":     "§4",
	"dark_purple":  "§5",
	"gold":         "§6",
	"gray":         "§7",
	"dark_gray":    "§8",
	"blue":         "§9",
	"green":        "§a",
	"aqua":         "§b",
	"red":          "§c",
	"light_purple": "§d",
	"yellow":       "§e",
	"white":        "§f",
}

// textStyle is one of the five boolean formatting flags a component may
// carry, rendered three different ways depending on output format.
type textStyle struct {
	set     func(*TextComponent) bool
	ansi    string
	section string
	tag     string
}

var textStyles = [...]textStyle{
	{func(tc *TextComponent) bool { return isSet(tc.Bold) }, "\033[1m", "§l", "bold"},
	{func(tc *TextComponent) bool { return isSet(tc.Italic) }, "\033[3m", "§o", "italic"},
	{func(tc *TextComponent) bool { return isSet(tc.Underlined) }, "\033[4m", "§n", "underlined"},
	{func(tc *TextComponent) bool { return isSet(tc.Strikethrough) }, "\033[9m", "§m", "strikethrough"},
	{func(tc *TextComponent) bool { return isSet(tc.Obfuscated) }, "\033[8m", "§k", "obfuscated"},
}

func isSet(flag *bool) bool { return flag != nil && *flag }

// leafContent is the literal text every rendering mode (except MiniMessage's
// translate/keybind branches) writes for a node before descending into its
// children: its own text, translate key, keybind id, scoreboard name, and
// selector, in wire order.
func (tc *TextComponent) leafContent(b *strings.Builder) {
	b.WriteString(tc.Text)
	b.WriteString(tc.Translate)
	b.WriteString(tc.Keybind)
	if tc.Score != nil {
		b.WriteString(tc.Score.Name)
	}
	b.WriteString(tc.Selector)
}

// String returns the plain text content of the component and all children,
// with no formatting. Translate keys are included as-is.
func (tc TextComponent) String() string {
	var b strings.Builder
	tc.renderPlain(&b)
	return b.String()
}

func (tc *TextComponent) renderPlain(b *strings.Builder) {
	tc.leafContent(b)
	for _, child := range tc.With {
		child.renderPlain(b)
	}
	for _, child := range tc.Extra {
		child.renderPlain(b)
	}
}

// ANSI returns the text with ANSI terminal escape codes for colors and formatting.
func (tc TextComponent) ANSI() string {
	var b strings.Builder
	if tc.renderANSI(&b) {
		b.WriteString("\033[0m")
	}
	return b.String()
}

func (tc *TextComponent) renderANSI(b *strings.Builder) bool {
	prefix := tc.ansiPrefix()
	styled := prefix != ""
	if styled {
		b.WriteString(prefix)
	}

	tc.leafContent(b)

	for _, child := range tc.With {
		if child.renderANSI(b) {
			styled = true
		}
	}
	for _, child := range tc.Extra {
		// reset before each styled child so the parent's style doesn't bleed
		if styled {
			b.WriteString("\033[0m")
		}
		if child.renderANSI(b) {
			styled = true
		}
	}
	return styled
}

func (tc *TextComponent) ansiPrefix() string {
	var codes []string

	if tc.Color != "" {
		if ansi, ok := textColorANSI[tc.Color]; ok {
			codes = append(codes, ansi)
		} else if r, g, b, ok := parseHexColor(tc.Color); ok {
			codes = append(codes, fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b))
		}
	}
	for _, style := range textStyles {
		if style.set(tc) {
			codes = append(codes, style.ansi)
		}
	}
	return strings.Join(codes, "")
}

// parseHexColor accepts a "#rrggbb" color string as used in components since
// 1.16; ok is false for anything else (named colors, malformed strings).
func parseHexColor(color string) (r, g, b int, ok bool) {
	if len(color) != 7 || color[0] != '#' {
		return 0, 0, 0, false
	}
	if _, err := fmt.Sscanf(color[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0, false
	}
	return r, g, b, true
}

// ColorCodes returns the text with legacy Bukkit-style section sign (§) color codes.
func (tc TextComponent) ColorCodes() string {
	var b strings.Builder
	tc.renderColorCodes(&b)
	return b.String()
}

func (tc *TextComponent) renderColorCodes(b *strings.Builder) {
	if tc.Color != "" {
		if code, ok := textColorSection[tc.Color]; ok {
			b.WriteString(code)
		}
	}
	for _, style := range textStyles {
		if style.set(tc) {
			b.WriteString(style.section)
		}
	}

	tc.leafContent(b)

	for _, child := range tc.With {
		child.renderColorCodes(b)
	}
	for _, child := range tc.Extra {
		child.renderColorCodes(b)
	}
}

// MiniMessage returns the text in Adventure MiniMessage format.
func (tc TextComponent) MiniMessage() string {
	var b strings.Builder
	tc.renderMiniMessage(&b)
	return b.String()
}

func (tc *TextComponent) renderMiniMessage(b *strings.Builder) {
	var tags []string
	if tc.Color != "" {
		tags = append(tags, tc.Color)
	}
	for _, style := range textStyles {
		if style.set(tc) {
			tags = append(tags, style.tag)
		}
	}
	for _, tag := range tags {
		b.WriteByte('<')
		b.WriteString(tag)
		b.WriteByte('>')
	}

	switch {
	case tc.Translate != "":
		b.WriteString("<lang:")
		b.WriteString(tc.Translate)
		for _, arg := range tc.With {
			b.WriteByte(':')
			arg.renderMiniMessage(b)
		}
		b.WriteByte('>')
	case tc.Keybind != "":
		b.WriteString("<key:")
		b.WriteString(tc.Keybind)
		b.WriteByte('>')
	default:
		b.WriteString(tc.Text)
		if tc.Score != nil {
			b.WriteString(tc.Score.Name)
		}
		b.WriteString(tc.Selector)
	}

	for _, child := range tc.Extra {
		child.renderMiniMessage(b)
	}

	for i := len(tags) - 1; i >= 0; i-- {
		b.WriteString("</")
		b.WriteString(tags[i])
		b.WriteByte('>')
	}
}
