package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/graph"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

// The line format stores one post per line:
//
//	parent>id>destination|text|score|flag|author|unix_ts|
//
// with "_" for a missing parent or destination, "+"/"-" flags for Canon and
// Suppress, and empty score and timestamp fields when zero or unknown.
const (
	lineArrow     = ">"
	lineSeparator = "|"
	lineEmpty     = "_"
)

var ErrMalformedLine = errors.New("malformed line")

// EncodeLines writes g in the line format, posts in creation order.
func EncodeLines(w io.Writer, g *graph.Graph) error {
	bw := bufio.NewWriter(w)
	for _, rec := range g.Records() {
		line, err := encodeLine(rec)
		if err != nil {
			return err
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func encodeLine(rec model.PostRecord) (string, error) {
	if strings.ContainsAny(rec.Text, "\r\n") {
		return "", fmt.Errorf("post %s: text spans several lines", rec.ID)
	}
	if strings.Contains(rec.Author, lineSeparator) {
		return "", fmt.Errorf("post %s: author contains %q", rec.ID, lineSeparator)
	}

	orEmpty := func(id string) string {
		if id == "" {
			return lineEmpty
		}
		return id
	}
	score := ""
	if rec.Score != 0 {
		score = strconv.Itoa(rec.Score)
	}
	flag := ""
	switch rec.Auxiliary {
	case model.Canon:
		flag = "+"
	case model.Suppress:
		flag = "-"
	}
	ts := ""
	if !rec.Timestamp.IsZero() {
		ts = strconv.FormatInt(rec.Timestamp.Unix(), 10)
	}

	ids := orEmpty(rec.Parent) + lineArrow + rec.ID + lineArrow + orEmpty(rec.Destination)
	return strings.Join([]string{ids, rec.Text, score, flag, rec.Author, ts, ""}, lineSeparator), nil
}

// DecodeLines reads a graph in the line format. Text may itself contain
// the separator; the trailing fields are read from the right.
func DecodeLines(r io.Reader) (*graph.Graph, error) {
	var records []model.PostRecord
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		rec, err := decodeLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}
	return buildGraph(records)
}

func decodeLine(line string) (model.PostRecord, error) {
	var rec model.PostRecord

	parts := strings.Split(line, lineSeparator)
	if len(parts) < 7 || parts[len(parts)-1] != "" {
		return rec, fmt.Errorf("%w: expected 6 fields terminated by %q", ErrMalformedLine, lineSeparator)
	}
	ids := strings.Split(parts[0], lineArrow)
	if len(ids) != 3 || ids[1] == "" || ids[1] == lineEmpty {
		return rec, fmt.Errorf("%w: bad id triple %q", ErrMalformedLine, parts[0])
	}

	tail := parts[len(parts)-5:]
	rec.ID = ids[1]
	if ids[0] != lineEmpty {
		rec.Parent = ids[0]
	}
	if ids[2] != lineEmpty {
		rec.Destination = ids[2]
	}
	rec.Text = strings.Join(parts[1:len(parts)-5], lineSeparator)

	if tail[0] != "" {
		score, err := strconv.Atoi(tail[0])
		if err != nil {
			return rec, fmt.Errorf("%w: bad score %q", ErrMalformedLine, tail[0])
		}
		rec.Score = score
	}
	switch tail[1] {
	case "":
	case "+":
		rec.Auxiliary = model.Canon
	case "-":
		rec.Auxiliary = model.Suppress
	default:
		return rec, fmt.Errorf("%w: bad flag %q", ErrMalformedLine, tail[1])
	}
	rec.Author = tail[2]
	if tail[3] != "" {
		sec, err := strconv.ParseInt(tail[3], 10, 64)
		if err != nil {
			return rec, fmt.Errorf("%w: bad timestamp %q", ErrMalformedLine, tail[3])
		}
		rec.Timestamp = time.Unix(sec, 0)
	}
	return rec, nil
}
