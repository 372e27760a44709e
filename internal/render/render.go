// Package render formats records and match results for the terminal.
package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// Palette holds the colors used for output. A disabled palette emits plain text.
type Palette struct {
	Match  *color.Color
	Dim    *color.Color
	Key    *color.Color
	String *color.Color
	Number *color.Color
	Bool   *color.Color
	Null   *color.Color
}

// NewPalette builds a palette; enabled overrides color's terminal detection.
func NewPalette(enabled bool) Palette {
	p := Palette{
		Match:  color.New(color.FgYellow, color.Bold),
		Dim:    color.New(color.FgHiBlack),
		Key:    color.New(color.FgCyan),
		String: color.New(color.FgGreen),
		Number: color.New(color.FgYellow),
		Bool:   color.New(color.FgMagenta),
		Null:   color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{p.Match, p.Dim, p.Key, p.String, p.Number, p.Bool, p.Null} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// DefaultPalette follows color.NoColor (NO_COLOR, non-tty stdout).
func DefaultPalette() Palette {
	return NewPalette(!color.NoColor)
}

// Highlight colors the runes of text at indices. Consecutive indices are
// emitted as one colored run. Out-of-range indices are ignored.
func (p Palette) Highlight(text string, indices []int) string {
	if len(indices) == 0 {
		return text
	}
	marked := make(map[int]bool, len(indices))
	for _, i := range indices {
		marked[i] = true
	}

	var sb strings.Builder
	var run []rune
	flush := func() {
		if len(run) > 0 {
			sb.WriteString(p.Match.Sprint(string(run)))
			run = run[:0]
		}
	}
	i := 0
	for _, r := range text {
		if marked[i] {
			run = append(run, r)
		} else {
			flush()
			sb.WriteRune(r)
		}
		i++
	}
	flush()
	return sb.String()
}

// Column fits text into width terminal cells: longer text is cut with an
// ellipsis, shorter text is padded. Highlighting is applied to what remains.
func (p Palette) Column(text string, indices []int, width int) string {
	if width <= 0 {
		return p.Highlight(text, indices)
	}
	if runewidth.StringWidth(text) > width {
		text = runewidth.Truncate(text, width, ellipsis)
		kept := len([]rune(text)) - len([]rune(ellipsis))
		var visible []int
		for _, i := range indices {
			if i < kept {
				visible = append(visible, i)
			}
		}
		indices = visible
	}
	pad := width - runewidth.StringWidth(text)
	return p.Highlight(text, indices) + strings.Repeat(" ", max(pad, 0))
}

// JSON renders a decoded JSON value (as produced by encoding/json into any)
// indented with colored scalars. Object keys are sorted.
func (p Palette) JSON(v any) string {
	return p.json(v, 0)
}

func (p Palette) json(v any, indent int) string {
	prefix := strings.Repeat("  ", indent)

	switch val := v.(type) {
	case nil:
		return p.Null.Sprint("null")
	case bool:
		return p.Bool.Sprint(strconv.FormatBool(val))
	case float64:
		return p.Number.Sprint(strconv.FormatFloat(val, 'f', -1, 64))
	case string:
		return p.String.Sprint(strconv.Quote(val))
	case []any:
		if len(val) == 0 {
			return "[]"
		}
		var sb strings.Builder
		sb.WriteString("[\n")
		for i, item := range val {
			sb.WriteString(prefix + "  " + p.json(item, indent+1))
			if i < len(val)-1 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		sb.WriteString(prefix + "]")
		return sb.String()
	case map[string]any:
		if len(val) == 0 {
			return "{}"
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var sb strings.Builder
		sb.WriteString("{\n")
		for i, k := range keys {
			sb.WriteString(prefix + "  " + p.Key.Sprint(strconv.Quote(k)) + ": ")
			sb.WriteString(p.json(val[k], indent+1))
			if i < len(keys)-1 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		sb.WriteString(prefix + "}")
		return sb.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Fields renders key/value pairs one per line with the keys aligned.
func (p Palette) Fields(fields [][2]string) string {
	width := 0
	for _, f := range fields {
		width = max(width, runewidth.StringWidth(f[0]))
	}

	var sb strings.Builder
	for _, f := range fields {
		sb.WriteString(p.Key.Sprint(runewidth.FillRight(f[0]+":", width+1)))
		sb.WriteString(" ")
		sb.WriteString(f[1])
		sb.WriteString("\n")
	}
	return sb.String()
}
