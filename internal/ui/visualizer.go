package ui

import (
	"fmt"
	"io"
	"strings"
)

// Visualizer writes optionally coloured text to a writer.
type Visualizer struct {
	writer   io.Writer
	useColor bool
}

func NewVisualizer(w io.Writer, useColor bool) *Visualizer {
	return &Visualizer{
		writer:   w,
		useColor: useColor,
	}
}

func (v *Visualizer) Print(message string) {
	fmt.Fprint(v.writer, message)
}

func (v *Visualizer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(v.writer, format, args...)
}

func (v *Visualizer) Println(message string) {
	fmt.Fprintln(v.writer, message)
}

func (v *Visualizer) colorize(message string, color Color) string {
	if !v.useColor || color == ColorDefault || message == "" {
		return message
	}
	return string(color) + message + string(ColorDefault)
}

// Colorize wraps message in color when colour output is on.
func (v *Visualizer) Colorize(message string, color Color) string {
	return v.colorize(message, color)
}

func (v *Visualizer) PrintColored(message string, color Color) {
	v.Print(v.colorize(message, color))
}

// Tagged replaces the {{tag}} colour markers in line with escape codes, or
// drops them when colour is off. Unknown tags are kept as text.
func (v *Visualizer) Tagged(line string) string {
	var b strings.Builder
	colored := false
	for {
		start := strings.Index(line, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(line[start:], "}}")
		if end == -1 {
			break
		}
		end += start + 2

		b.WriteString(line[:start])
		tag := line[start:end]
		if color, ok := colorTags[tag]; ok {
			if v.useColor {
				b.WriteString(string(color))
				colored = color != ColorDefault
			}
		} else {
			b.WriteString(tag)
		}
		line = line[end:]
	}
	b.WriteString(line)
	if colored {
		b.WriteString(string(ColorDefault))
	}
	return b.String()
}

// PrintTagged prints a line containing {{tag}} colour markers.
func (v *Visualizer) PrintTagged(line string) {
	v.Println(v.Tagged(line))
}
