// Package logger provides leveled logging with per-algorithm prefixes
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

// Log file rotation limits
const (
	MaxFileSizeMB  = 10
	MaxFileBackups = 3
	MaxFileAgeDays = 28
)

const algorithmKey = "algorithm"

// Logger is the logging surface used across mazesearch
type Logger interface {
	Info(message string, fields ...Field)
	Error(message string, fields ...Field)
	Warn(message string, fields ...Field)
	Debug(message string, fields ...Field)
	Success(message string, fields ...Field)
	WithAlgorithm(algorithm string) Logger
}

// Field is one key=value pair attached to a log line
type Field struct {
	Key   string
	Value interface{}
}

// WithField builds a Field
func WithField(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// AlgorithmLogger is a logrus-backed Logger. Lines from a logger returned
// by WithAlgorithm carry the algorithm name as a prefix.
type AlgorithmLogger struct {
	logger    *logrus.Logger
	algorithm string
}

type levelStyle struct {
	label string
	color *color.Color
}

var levelStyles = map[logrus.Level]levelStyle{
	logrus.PanicLevel: {"ERROR", color.New(color.FgRed, color.Bold)},
	logrus.FatalLevel: {"ERROR", color.New(color.FgRed, color.Bold)},
	logrus.ErrorLevel: {"ERROR", color.New(color.FgRed, color.Bold)},
	logrus.WarnLevel:  {"WARN", color.New(color.FgYellow, color.Bold)},
	logrus.InfoLevel:  {"INFO", color.New(color.FgCyan)},
	logrus.DebugLevel: {"DEBUG", color.New(color.FgWhite, color.Faint)},
	logrus.TraceLevel: {"DEBUG", color.New(color.FgWhite, color.Faint)},
}

var (
	algorithmColor = color.New(color.FgBlue)
	fieldsColor    = color.New(color.FgWhite, color.Faint)
)

// CustomFormatter renders "🧭 [time] LEVEL: [algorithm] message {k=v, ...}"
// with fields sorted by key.
type CustomFormatter struct {
	TimestampFormat string
	DisableColors   bool
}

func (f *CustomFormatter) paint(c *color.Color, s string) string {
	if f.DisableColors {
		return s
	}
	return c.Sprint(s)
}

// Format implements logrus.Formatter
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	style, ok := levelStyles[entry.Level]
	if !ok {
		style = levelStyles[logrus.InfoLevel]
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "🧭 [%s] %s: ", entry.Time.Format(f.TimestampFormat), f.paint(style.color, style.label))

	if algorithm, ok := entry.Data[algorithmKey]; ok {
		fmt.Fprintf(&buf, "[%s] ", f.paint(algorithmColor, fmt.Sprint(algorithm)))
	}
	buf.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k != algorithmKey {
			keys = append(keys, k)
		}
	}
	if len(keys) > 0 {
		sort.Strings(keys)
		var fields bytes.Buffer
		fields.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				fields.WriteString(", ")
			}
			fmt.Fprintf(&fields, "%s=%v", k, entry.Data[k])
		}
		fields.WriteString("}")
		buf.WriteString(f.paint(fieldsColor, fields.String()))
	}

	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// CreateLogger logs to stderr, and also to logFile when it is set
func CreateLogger(logFile string, logLevel string) Logger {
	var output io.Writer = os.Stderr
	if logFile != "" {
		output = io.MultiWriter(os.Stderr, NewRotatingFile(logFile))
	}
	return newLogger(logLevel, output, color.NoColor)
}

// CreateLoggerWithOutput logs uncolored lines to output, and also to logFile
// when it is set
func CreateLoggerWithOutput(logFile string, logLevel string, output io.Writer) Logger {
	if logFile != "" {
		output = io.MultiWriter(output, NewRotatingFile(logFile))
	}
	return newLogger(logLevel, output, true)
}

// NewRotatingFile appends to path and rolls it over at MaxFileSizeMB
func NewRotatingFile(path string) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    MaxFileSizeMB,
		MaxBackups: MaxFileBackups,
		MaxAge:     MaxFileAgeDays,
		Compress:   true,
	}
}

// newLogger falls back to info for an unknown level name
func newLogger(logLevel string, output io.Writer, disableColors bool) *AlgorithmLogger {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}

	log := logrus.New()
	log.SetLevel(level)
	log.SetOutput(output)
	log.SetFormatter(&CustomFormatter{TimestampFormat: "15:04:05", DisableColors: disableColors})
	return &AlgorithmLogger{logger: log}
}

// Discard returns a logger that writes nothing
func Discard() Logger {
	return newLogger("panic", io.Discard, true)
}

// WithAlgorithm returns a logger sharing l's output that prefixes lines
// with algorithm
func (l *AlgorithmLogger) WithAlgorithm(algorithm string) Logger {
	return &AlgorithmLogger{logger: l.logger, algorithm: algorithm}
}

func (l *AlgorithmLogger) log(level logrus.Level, message string, fields []Field) {
	if !l.logger.IsLevelEnabled(level) {
		return
	}
	data := make(logrus.Fields, len(fields)+1)
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	if l.algorithm != "" {
		data[algorithmKey] = l.algorithm
	}
	l.logger.WithFields(data).Log(level, message)
}

func (l *AlgorithmLogger) Info(message string, fields ...Field) {
	l.log(logrus.InfoLevel, message, fields)
}

func (l *AlgorithmLogger) Error(message string, fields ...Field) {
	l.log(logrus.ErrorLevel, message, fields)
}

func (l *AlgorithmLogger) Warn(message string, fields ...Field) {
	l.log(logrus.WarnLevel, message, fields)
}

func (l *AlgorithmLogger) Debug(message string, fields ...Field) {
	l.log(logrus.DebugLevel, message, fields)
}

// Success is an info line marked with a check mark
func (l *AlgorithmLogger) Success(message string, fields ...Field) {
	l.log(logrus.InfoLevel, "✅ "+message, fields)
}

// ConsoleLogger prints user-facing CLI messages, not log records
type ConsoleLogger struct {
	out io.Writer
	err io.Writer
}

// NewConsoleLogger writes errors to errOut and everything else to out
func NewConsoleLogger(out, errOut io.Writer) *ConsoleLogger {
	return &ConsoleLogger{out: out, err: errOut}
}

func (c *ConsoleLogger) print(w io.Writer, tag func(string, ...interface{}) string, message string) {
	fmt.Fprintf(w, "🧭 %s %s\n", tag("[mazesearch]"), message)
}

func (c *ConsoleLogger) Info(message string) { c.print(c.out, color.CyanString, message) }

func (c *ConsoleLogger) Warn(message string) { c.print(c.out, color.YellowString, message) }

func (c *ConsoleLogger) Error(message string) { c.print(c.err, color.RedString, message) }

func (c *ConsoleLogger) Success(message string) {
	c.print(c.out, color.GreenString, "✅ "+message)
}
