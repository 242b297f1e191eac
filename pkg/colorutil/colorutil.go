// Package colorutil provides color parsing and adjustment helpers for
// entity and layer colors, which are stored as hex strings.
package colorutil

import (
	"fmt"
	"image/color"
	"strings"
)

// Common colors used throughout the application.
var (
	Black   = color.RGBA{0, 0, 0, 255}
	White   = color.RGBA{255, 255, 255, 255}
	Red     = color.RGBA{255, 0, 0, 255}
	Green   = color.RGBA{0, 255, 0, 255}
	Blue    = color.RGBA{0, 0, 255, 255}
	Cyan    = color.RGBA{0, 255, 255, 255}
	Magenta = color.RGBA{255, 0, 255, 255}
	Yellow  = color.RGBA{255, 255, 0, 255}
)

// ParseHex parses "#RRGGBB" or "#RRGGBBAA" into a color. The leading
// '#' is optional.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")

	var c color.RGBA
	c.A = 255
	switch len(s) {
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
	case 8:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: want RRGGBB or RRGGBBAA", s)
	}
	return c, nil
}

// ParseHexOr parses a hex color, falling back to the given color when
// the string is empty or malformed.
func ParseHexOr(s string, fallback color.RGBA) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		return fallback
	}
	return c
}

// Hex formats a color as "#RRGGBB", dropping the alpha channel.
func Hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02X%02X%02X", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Lighten moves a color toward white by the given amount in [0, 1].
func Lighten(c color.RGBA, amount float64) color.RGBA {
	return blend(c, White, amount)
}

// Darken moves a color toward black by the given amount in [0, 1].
func Darken(c color.RGBA, amount float64) color.RGBA {
	return blend(c, Black, amount)
}

func blend(c, target color.RGBA, amount float64) color.RGBA {
	if amount < 0 {
		amount = 0
	} else if amount > 1 {
		amount = 1
	}
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*amount)
	}
	return color.RGBA{
		R: lerp(c.R, target.R),
		G: lerp(c.G, target.G),
		B: lerp(c.B, target.B),
		A: c.A,
	}
}

// WithAlpha returns the color with its alpha channel replaced.
func WithAlpha(c color.RGBA, alpha uint8) color.RGBA {
	c.A = alpha
	return c
}
