package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
)

var (
	componentColor = color.New(color.FgCyan)
	debugColor     = color.New(color.FgHiBlack)
	warnColor      = color.New(color.FgYellow)
	errorColor     = color.New(color.FgRed, color.Bold)
)

// ConsoleLogger writes translated messages to stdout, warnings and errors
// to stderr. Colors are used only when the target stream is a terminal.
type ConsoleLogger struct {
	level     LogLevel
	component string
	stdout    io.Writer
	stderr    io.Writer
	color     bool
}

func NewConsole(level LogLevel) *ConsoleLogger {
	return &ConsoleLogger{
		level:  level,
		stdout: os.Stdout,
		stderr: os.Stderr,
		color:  isTerminal(os.Stdout) && isTerminal(os.Stderr),
	}
}

// NewConsoleWriter creates an uncolored console logger over arbitrary writers.
func NewConsoleWriter(level LogLevel, stdout, stderr io.Writer) *ConsoleLogger {
	return &ConsoleLogger{
		level:  level,
		stdout: stdout,
		stderr: stderr,
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (l *ConsoleLogger) Debug(msg string, args ...interface{}) {
	if l.level > LevelDebug {
		return
	}
	l.log(LevelDebug, msg, args...)
}

func (l *ConsoleLogger) Info(msg string, args ...interface{}) {
	if l.level > LevelInfo {
		return
	}
	l.log(LevelInfo, msg, args...)
}

func (l *ConsoleLogger) Warn(msg string, args ...interface{}) {
	if l.level > LevelWarn {
		return
	}
	l.log(LevelWarn, msg, args...)
}

func (l *ConsoleLogger) Error(msg string, args ...interface{}) {
	if l.level > LevelError {
		return
	}
	l.log(LevelError, msg, args...)
}

func (l *ConsoleLogger) WithComponent(component string) Logger {
	return &ConsoleLogger{
		level:     l.level,
		component: component,
		stdout:    l.stdout,
		stderr:    l.stderr,
		color:     l.color,
	}
}

func (l *ConsoleLogger) log(level LogLevel, msg string, args ...interface{}) {
	output := l10n.F(msg, args...)

	if l.component != "" {
		prefix := "[" + l.component + "]"
		if l.color {
			prefix = componentColor.Sprint(prefix)
		}
		output = prefix + " " + output
	}

	if l.color {
		switch level {
		case LevelDebug:
			output = debugColor.Sprint(output)
		case LevelWarn:
			output = warnColor.Sprint(output)
		case LevelError:
			output = errorColor.Sprint(output)
		}
	}

	if level >= LevelWarn {
		fmt.Fprintln(l.stderr, output)
	} else {
		fmt.Fprintln(l.stdout, output)
	}
}

var _ Logger = (*ConsoleLogger)(nil)
