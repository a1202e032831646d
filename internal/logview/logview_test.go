package logview

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendLine(t *testing.T, path, line string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString(line)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "24-03-14 09:05:00.250", FormatTimestamp("2024-03-14T09:05:00.25Z"))
	assert.Equal(t, "yesterday", FormatTimestamp("yesterday"))
}

func TestFormatEntry(t *testing.T) {
	v := NewViewer(t.TempDir(), "", &bytes.Buffer{}, false)
	got := v.FormatEntry(Entry{
		"time":   "2024-03-14T09:05:00Z",
		"level":  "info",
		"msg":    "Post added",
		"post":   "B",
		"author": "ann",
	})
	assert.Equal(t, "24-03-14 09:05:00.000 INFO    Post added\n    author: ann\n    post: B", got)
}

func TestPollReadsOnlyNewEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "info.log")
	appendLine(t, path, `{"time":"2024-03-14T09:05:00Z","level":"INFO","msg":"Graph saved"}`+"\n")

	var out bytes.Buffer
	v := NewViewer(dir, "", &out, false)
	require.NoError(t, v.Poll())
	assert.Contains(t, out.String(), "New log file detected: info.log")
	assert.Contains(t, out.String(), "Graph saved")

	out.Reset()
	appendLine(t, path, `{"time":"2024-03-14T09:06:00Z","level":"DEBUG","msg":"Selection moved"}`+"\n")
	appendLine(t, path, `{"time":"2024-03-14T09:07:00Z","level":"INFO","msg":"half`)
	require.NoError(t, v.Poll())
	assert.NotContains(t, out.String(), "Graph saved")
	assert.NotContains(t, out.String(), "half")
	assert.Contains(t, out.String(), "Selection moved")

	out.Reset()
	appendLine(t, path, ` written"}`+"\n")
	require.NoError(t, v.Poll())
	assert.Contains(t, out.String(), "half written")
}

func TestPollFilterAndTruncation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "commands.log")
	appendLine(t, path, `{"time":"2024-03-14T09:05:00Z","level":"INFO","msg":"COMMAND","line":"post reply"}`+"\n")
	appendLine(t, path, `{"time":"2024-03-14T09:05:01Z","level":"INFO","msg":"COMMAND","line":"nav down"}`+"\n")
	appendLine(t, path, "not json\n")

	var out bytes.Buffer
	v := NewViewer(dir, "REPLY", &out, false)
	require.NoError(t, v.Poll())
	assert.Contains(t, out.String(), "post reply")
	assert.NotContains(t, out.String(), "nav down")
	assert.Contains(t, out.String(), "Error parsing log entry in commands.log")

	require.NoError(t, os.WriteFile(path, []byte(`{"msg":"post reply again"}`+"\n"), 0644))
	out.Reset()
	require.NoError(t, v.Poll())
	assert.Contains(t, out.String(), "commands.log has been truncated")
	assert.Contains(t, out.String(), "post reply again")
}
