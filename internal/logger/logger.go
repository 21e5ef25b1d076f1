package logger

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"sync"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timeLayout = "[2006-01-02 | 15:04:05]"

// Console encoder with bracketed timestamps and coloured levels.
func Encoder() zapcore.Encoder {
	config := zap.NewDevelopmentEncoderConfig()
	config.EncodeLevel = levelEncoder
	config.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	config.EncodeDuration = zapcore.StringDurationEncoder
	return zapcore.NewConsoleEncoder(config)
}

// Logger writing to w, dropping entries below level.
func New(w io.Writer, level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(Encoder(), zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// Parse a level name such as "debug" or "warn".
func ParseLevel(name string) (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return level, errors.Wrapf(err, "invalid log level %q", name)
	}
	return level, nil
}

// Buffered keeps everything it logs in memory, so that a report page can show
// the log of the work that produced it.
type Buffered struct {
	*zap.Logger
	buf *lockedBuffer
}

func NewBuffered(level zapcore.Level) *Buffered {
	buf := &lockedBuffer{}
	return &Buffered{
		Logger: New(buf, level),
		buf:    buf,
	}
}

// Raw log text, ANSI codes included.
func (b *Buffered) String() string {
	return b.buf.String()
}

// Log text as a <pre> block, with the level colours turned into spans.
func (b *Buffered) HTML() string {
	return ansiToHTML(b.buf.String())
}

func (b *Buffered) Reset() {
	b.buf.Reset()
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (l *lockedBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Write(p)
}

func (l *lockedBuffer) Sync() error {
	return nil
}

func (l *lockedBuffer) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.String()
}

func (l *lockedBuffer) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf.Reset()
}

var levelColors = map[zapcore.Level]func(interface{}) aurora.Value{
	zapcore.DebugLevel: aurora.Cyan,
	zapcore.InfoLevel:  aurora.Green,
	zapcore.WarnLevel:  aurora.Yellow,
	zapcore.ErrorLevel: aurora.Red,
}

// Levels above error are left plain.
func levelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	color, ok := levelColors[level]
	if !ok {
		enc.AppendString(level.String())
		return
	}
	enc.AppendString(color(level.String()).String())
}

var ansiPattern = regexp.MustCompile(`\033\[(\d+)m`)

// SGR foreground codes to CSS colour names
var colorMap = map[string]string{
	"31": "red",
	"32": "green",
	"33": "yellow",
	"34": "blue",
	"36": "cyan",
}

// Converts ANSI color codes to HTML spans with inline styles. Codes other than
// the known colours and reset are dropped.
func ansiToHTML(input string) string {
	var result strings.Builder
	lastIndex := 0
	open := false

	result.WriteString("<pre>")
	for _, match := range ansiPattern.FindAllStringSubmatchIndex(input, -1) {
		start, end := match[0], match[1]
		if start > lastIndex {
			result.WriteString(escapeHTML(input[lastIndex:start]))
		}

		code := input[match[2]:match[3]]
		if color, ok := colorMap[code]; ok {
			if open {
				result.WriteString("</span>")
			}
			result.WriteString(`<span style="color: ` + color + `;">`)
			open = true
		} else if code == "0" && open {
			result.WriteString("</span>")
			open = false
		}
		lastIndex = end
	}

	if lastIndex < len(input) {
		result.WriteString(escapeHTML(input[lastIndex:]))
	}
	if open {
		result.WriteString("</span>")
	}
	result.WriteString("</pre>")
	return result.String()
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
