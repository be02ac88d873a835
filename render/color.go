package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// ColorMode represents color output mode
type ColorMode int

const (
	// ColorAuto enables colors based on environment (default)
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on
	ColorAlways
	// ColorNever forces colors off
	ColorNever
)

// ParseColorMode parses a string into a ColorMode
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// ResolveColors determines whether to use colors based on mode and environment.
// In auto mode NO_COLOR and TERM=dumb disable colors; otherwise terminal
// detection decides.
func ResolveColors(mode ColorMode, terminal bool) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default: // ColorAuto
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		if os.Getenv("TERM") == "dumb" {
			return false
		}
		return terminal
	}
}

// StdoutIsTerminal reports fatih/color's terminal detection for stdout.
func StdoutIsTerminal() bool {
	return !color.NoColor
}

// palette wraps the colors used by the text renderer.
type palette struct {
	enabled bool
}

func (p palette) paint(text string, attrs ...color.Attribute) string {
	if !p.enabled {
		return text
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}

func (p palette) header(text string) string { return p.paint(text, color.FgWhite, color.Bold) }
func (p palette) title(text string) string  { return p.paint(text, color.Bold) }
func (p palette) match(text string) string  { return p.paint(text, color.FgGreen) }
func (p palette) link(text string) string   { return p.paint(text, color.FgCyan, color.Underline) }
func (p palette) dim(text string) string    { return p.paint(text, color.Faint) }
func (p palette) warn(text string) string   { return p.paint(text, color.FgYellow) }
