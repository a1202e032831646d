// Package ui renders pages and messages on the terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 100

// Colour modes, matching the configuration values.
const (
	ModeAuto   = "auto"
	ModeAlways = "always"
	ModeNever  = "never"
)

// UI prints messages, prompts and pages.
type UI struct {
	*Visualizer
}

// NewUI creates a UI writing to w. In auto mode colour is enabled only when
// w is a terminal.
func NewUI(w io.Writer, mode string) *UI {
	return &UI{
		Visualizer: NewVisualizer(w, ColorEnabled(w, mode)),
	}
}

// ColorEnabled resolves a colour mode for w.
func ColorEnabled(w io.Writer, mode string) bool {
	switch strings.ToLower(mode) {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// UseColor reports whether escape codes are written.
func (u *UI) UseColor() bool {
	return u.useColor
}

// Width returns the terminal width of the output, DefaultWidth when unknown.
func (u *UI) Width() int {
	if f, ok := u.writer.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return DefaultWidth
}

func (u *UI) Error(message string) {
	u.Printf("%s %s\n", u.colorize("!", ColorRed), u.colorize(message, ColorLightOrange))
}

func (u *UI) Success(message string) {
	u.Println(u.colorize(message, ColorLightGreen))
}

func (u *UI) Warning(message string) {
	u.Printf("%s %s\n", u.colorize("?", ColorLightRed), u.colorize(message, ColorLightYellow))
}

func (u *UI) Info(message string) {
	u.Println(u.colorize(message, ColorGray))
}

// Prompt builds the input prompt: author, graph name and an asterisk when
// the graph has unsaved changes.
func (u *UI) Prompt(author, graph string, dirty bool) string {
	var b strings.Builder
	if author != "" {
		b.WriteString(u.colorize(author, ColorLightBlue))
		b.WriteString(u.colorize(" @ ", ColorWhite))
	}
	if graph == "" {
		graph = "untitled"
	}
	b.WriteString(u.colorize(graph, ColorLightPurple))
	if dirty {
		b.WriteString(u.colorize("*", ColorYellow))
	}
	b.WriteString(u.colorize(" > ", ColorGreen))
	return b.String()
}

// ReadPassword reads a line from the terminal without echo.
func (u *UI) ReadPassword(prompt string) (string, error) {
	u.Print(prompt)

	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	u.Println("")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}
