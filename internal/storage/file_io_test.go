package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/graph"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

func TestFileExportImport(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatXML, FormatBug} {
		t.Run(format, func(t *testing.T) {
			g := sampleGraph(t)
			path := filepath.Join(t.TempDir(), "ideas."+format)

			require.NoError(t, FileExport(g, "ideas", path, format))
			loaded, name, err := FileImport(path, format)
			require.NoError(t, err)
			assert.Equal(t, "ideas", name)
			assertSameGraph(t, g, loaded)
		})
	}
}

func TestFileUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ideas.yaml")
	assert.Error(t, FileExport(graph.New("t", ""), "t", path, "yaml"))

	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	_, _, err := FileImport(path, "yaml")
	assert.Error(t, err)
}

func TestFileImportRejectsDanglingReference(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"bad","posts":[
		{"id":"X0","text":"root"},
		{"id":"X1","parent":"X7","text":"orphan"}
	]}`), 0644))

	_, _, err := FileImport(path, FormatJSON)
	assert.ErrorIs(t, err, graph.ErrMissingRecord)
}

func TestFileImportRejectsEmptyGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"empty","posts":[]}`), 0644))

	_, _, err := FileImport(path, FormatJSON)
	assert.ErrorIs(t, err, ErrEmptyGraph)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("a/b.JSON"))
	assert.Equal(t, FormatXML, FormatFromPath("b.xml"))
	assert.Equal(t, FormatBug, FormatFromPath("b.bug"))
	assert.Equal(t, FormatBug, FormatFromPath("noext"))
}

func TestEncodeLines(t *testing.T) {
	g := sampleGraph(t)
	var buf bytes.Buffer
	require.NoError(t, EncodeLines(&buf, g))

	ts := "1710407100"
	want := strings.Join([]string{
		"_>X0>_|topic|||ann|" + ts + "|",
		"X0>X1>_|a | with a bar|||bob|" + ts + "|",
		"X1>X2>_|claim||+|ann|" + ts + "|",
		"X0>X3>X1|b|3|-||" + ts + "|",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestEncodeLinesRejectsMultilineText(t *testing.T) {
	g := graph.New("root", "")
	_, err := g.AddPost(g.Root(), nil, "two\nlines", model.Neutral, "")
	require.NoError(t, err)

	assert.Error(t, EncodeLines(&bytes.Buffer{}, g))
}

func TestDecodeLines(t *testing.T) {
	input := "_>R>_|root|||||\n" +
		"\n" +
		"R>A>_|x|y|-4|||0|\n" +
		"R>B>A|b|2|+|cy||\n"

	g, err := DecodeLines(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 3, g.Len())

	a, ok := g.Get("A")
	require.True(t, ok)
	assert.Equal(t, "x|y", a.Text)
	assert.Equal(t, -4, a.Score)
	assert.Equal(t, model.Neutral, a.Auxiliary)
	assert.Equal(t, int64(0), a.Timestamp.Unix())

	b, ok := g.Get("B")
	require.True(t, ok)
	assert.Same(t, a, b.Destination)
	assert.Equal(t, model.Canon, b.Auxiliary)
	assert.Equal(t, "cy", b.Author)
	assert.True(t, b.Timestamp.IsZero())
	assert.Equal(t, 1, g.Root().CanonScore)
}

func TestDecodeLinesErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"too few fields", "_>R>_|root||\n", ErrMalformedLine},
		{"missing terminator", "_>R>_|root||||0\n", ErrMalformedLine},
		{"bad ids", "R>_|root|||||\n", ErrMalformedLine},
		{"bad score", "_>R>_|root|x||||\n", ErrMalformedLine},
		{"bad flag", "_>R>_|root||*|||\n", ErrMalformedLine},
		{"bad timestamp", "_>R>_|root||||soon|\n", ErrMalformedLine},
		{"unknown parent", "_>R>_|root|||||\nQ>A>_|a|||||\n", graph.ErrMissingRecord},
		{"second root", "_>R>_|root|||||\n_>A>_|a|||||\n", graph.ErrNoParent},
		{"empty", "", ErrEmptyGraph},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLines(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
