package ui

// Color is an ANSI escape sequence that switches the foreground colour.
type Color string

const (
	ColorDefault     Color = "\033[0m"
	ColorDarkGray    Color = "\033[38;2;100;100;100m"
	ColorGray        Color = "\033[38;2;150;150;150m"
	ColorWhite       Color = "\033[38;2;255;255;255m"
	ColorBrightWhite Color = "\033[38;2;255;255;255;1m"

	ColorLightRed Color = "\033[38;2;255;150;150m"
	ColorRed      Color = "\033[38;2;255;0;0m"

	ColorLightGreen Color = "\033[38;2;150;255;150m"
	ColorGreen      Color = "\033[38;2;0;255;0m"

	ColorLightYellow Color = "\033[38;2;255;255;150m"
	ColorYellow      Color = "\033[38;2;255;255;0m"

	ColorLightBlue   Color = "\033[38;2;150;150;255m"
	ColorLightPurple Color = "\033[38;2;200;150;255m"
	ColorLightOrange Color = "\033[38;2;255;200;150m"
)

// colorTags maps the {{tag}} markers understood by Visualizer.PrintTagged.
var colorTags = map[string]Color{
	"{{default}}": ColorDefault,
	"{{gray}}":    ColorGray,
	"{{dark}}":    ColorDarkGray,
	"{{white}}":   ColorBrightWhite,
	"{{green}}":   ColorLightGreen,
	"{{red}}":     ColorLightRed,
	"{{yellow}}":  ColorYellow,
	"{{blue}}":    ColorLightBlue,
	"{{purple}}":  ColorLightPurple,
	"{{orange}}":  ColorLightOrange,
}
