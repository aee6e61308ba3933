package color

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
)

const (
	Reset = "\033[0m"
	Bold  = "\033[1m"

	Green     = "\033[32m"
	Yellow    = "\033[33m"
	Blue      = "\033[34m"
	Cyan      = "\033[36m"
	Gray      = "\033[90m"
	BrightRed = "\033[91m"
)

var colorEnabled = true

func init() {
	// diagnostics and listings both go to stderr
	if termenv.NewOutput(os.Stderr).EnvColorProfile() == termenv.Ascii {
		colorEnabled = false
	}
}

func EnableColor(enable bool) {
	colorEnabled = enable
}

func Colorize(color, text string) string {
	if !colorEnabled {
		return text
	}
	return color + text + Reset
}

func BrightRedText(text string) string {
	return Colorize(BrightRed, text)
}

func GreenText(text string) string {
	return Colorize(Green, text)
}

func YellowText(text string) string {
	return Colorize(Yellow, text)
}

func BlueText(text string) string {
	return Colorize(Blue, text)
}

func CyanText(text string) string {
	return Colorize(Cyan, text)
}

func GrayText(text string) string {
	return Colorize(Gray, text)
}

func BoldText(text string) string {
	return Colorize(Bold, text)
}

// Error renders the one-line diagnostic printed before a non-zero exit.
// The exit code is shown in brackets.
func Error(code int, message string) string {
	tag := fmt.Sprintf("[%d]", code)
	if !colorEnabled {
		return "error" + tag + ": " + message
	}
	return BrightRedText(BoldText("error")) + GrayText(tag) + ": " + message
}

// Order renders an instruction order in a listing.
func Order(order int) string {
	return CyanText(fmt.Sprintf("%4d", order))
}
