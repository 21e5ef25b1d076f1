package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/logrusorgru/aurora"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zapcore.InfoLevel)
	log.Debug("hidden")
	log.Info("built tree", zap.Int("nodes", 11))
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, aurora.Green("info").String())
	assert.Contains(t, out, "built tree")
	assert.Contains(t, out, `{"nodes": 11}`)
	assert.Regexp(t, `^\[\d{4}-\d{2}-\d{2} \| \d{2}:\d{2}:\d{2}\]`, out)
	assert.Contains(t, out, "logger_test.go", "caller is recorded")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, level)

	_, err = ParseLevel("loud")
	assert.EqualError(t, err, `invalid log level "loud": unrecognized level: "loud"`)
}

func TestBuffered(t *testing.T) {
	log := NewBuffered(zapcore.DebugLevel)
	log.Debug("triangulated points", zap.Int("points", 3))
	log.Warn("a <b> & c")

	assert.Contains(t, log.String(), "triangulated points")

	html := log.HTML()
	assert.True(t, strings.HasPrefix(html, "<pre>"))
	assert.True(t, strings.HasSuffix(html, "</pre>"))
	assert.Contains(t, html, `<span style="color: cyan;">debug</span>`)
	assert.Contains(t, html, `<span style="color: yellow;">warn</span>`)
	assert.Contains(t, html, "a &lt;b&gt; &amp; c")
	assert.NotContains(t, html, "\033")

	log.Reset()
	assert.Empty(t, log.String())
	assert.Equal(t, "<pre></pre>", log.HTML())
}

func TestAnsiToHTML(t *testing.T) {
	assert.Equal(t, "<pre>plain</pre>", ansiToHTML("plain"))
	assert.Equal(t,
		`<pre><span style="color: red;">a</span><span style="color: green;">b</span>c</pre>`,
		ansiToHTML("\033[31ma\033[32mb\033[0mc"),
	)
	assert.Equal(t, `<pre><span style="color: blue;">open</span></pre>`, ansiToHTML("\033[34mopen"))
	assert.Equal(t, "<pre>bold</pre>", ansiToHTML("\033[1mbold"), "unknown codes are dropped")
}
