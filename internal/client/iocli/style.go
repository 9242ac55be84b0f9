package iocli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter раскрашивает текст, если терминал поддерживает цвета
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...interface{}) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	return f.Sprint(fmt.Sprintf(format, a...))
}

// noColor учитывает NO_COLOR и автоопределение fatih/color
func noColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

var (
	Success   = Formatter{color: color.New(color.FgGreen)}
	Error     = Formatter{color: color.New(color.FgRed)}
	Warning   = Formatter{color: color.New(color.FgYellow)}
	Info      = Formatter{color: color.New(color.FgCyan)}
	Highlight = Formatter{color: color.New(color.FgCyan, color.Bold), prefix: "'", suffix: "'"}
	Muted     = Formatter{color: color.New(color.FgHiBlack), prefix: "(", suffix: ")"}
	Code      = Formatter{color: color.New(color.FgYellow), prefix: "`", suffix: "`"}
)
