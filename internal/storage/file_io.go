package storage

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/graph"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

// File formats understood by FileExport and FileImport.
const (
	FormatJSON = "json"
	FormatXML  = "xml"
	FormatBug  = "bug"
)

// graphDocument is the flat file form of a graph.
type graphDocument struct {
	XMLName xml.Name           `json:"-" xml:"graph"`
	Name    string             `json:"name" xml:"name,attr"`
	Posts   []model.PostRecord `json:"posts" xml:"post"`
}

// FormatFromPath guesses the format from the file extension, falling
// back to the line format.
func FormatFromPath(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON
	case ".xml":
		return FormatXML
	default:
		return FormatBug
	}
}

// FileExport writes g to filename in the given format.
func FileExport(g *graph.Graph, name, filename, format string) error {
	var (
		data []byte
		err  error
	)
	doc := graphDocument{Name: name, Posts: g.Records()}
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(doc, "", "  ")
	case FormatXML:
		data, err = xml.MarshalIndent(doc, "", "  ")
	case FormatBug:
		var buf bytes.Buffer
		err = EncodeLines(&buf, g)
		data = buf.Bytes()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal graph: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// FileImport reads a graph from filename. The returned name is the one
// stored in the file, or the file's base name for the line format.
func FileImport(filename, format string) (*graph.Graph, string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}

	var doc graphDocument
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatXML:
		err = xml.Unmarshal(data, &doc)
	case FormatBug:
		g, err := DecodeLines(bytes.NewReader(data))
		if err != nil {
			return nil, "", err
		}
		return g, strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)), nil
	default:
		return nil, "", fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal data: %w", err)
	}

	g, err := buildGraph(doc.Posts)
	if err != nil {
		return nil, "", err
	}
	return g, doc.Name, nil
}

// buildGraph replays records in order, rejecting dangling references.
func buildGraph(records []model.PostRecord) (*graph.Graph, error) {
	if len(records) == 0 {
		return nil, ErrEmptyGraph
	}
	g := graph.Empty()
	for i, rec := range records {
		if err := g.Validate(rec); err != nil {
			return nil, fmt.Errorf("post %d: %w", i+1, err)
		}
		if i > 0 && rec.Parent == "" {
			return nil, fmt.Errorf("post %d (%s): %w", i+1, rec.ID, graph.ErrNoParent)
		}
		g.Insert(rec)
	}
	return g, nil
}
