// Package model defines the data structures used throughout the brainstormer application.
package model

import (
	"math"
	"time"
)

// Auxiliary is the moderation tag a post is created with.
type Auxiliary int

const (
	Suppress Auxiliary = -1
	Neutral  Auxiliary = 0
	Canon    Auxiliary = 1
)

// String returns the string representation of the Auxiliary
func (a Auxiliary) String() string {
	switch a {
	case Suppress:
		return "suppress"
	case Canon:
		return "canon"
	default:
		return "neutral"
	}
}

// Post represents a single node of the brainstorm graph.
//
// Parent/Children form the reply tree, Destination/Sources the annotation
// relation. Children and Sources are non-owning back references filled in
// when another post names this one as its parent or destination.
type Post struct {
	ID            string    `json:"id" xml:"id,attr"`
	Text          string    `json:"text" xml:"text"`
	Score         int       `json:"score" xml:"score,attr"`
	Visibility    float64   `json:"-" xml:"-"`
	Auxiliary     Auxiliary `json:"auxiliary" xml:"auxiliary,attr"`
	CanonScore    int       `json:"-" xml:"-"`
	SuppressScore int       `json:"-" xml:"-"`
	Parent        *Post     `json:"-" xml:"-"`
	Children      []*Post   `json:"-" xml:"-"`
	Destination   *Post     `json:"-" xml:"-"`
	Sources       []*Post   `json:"-" xml:"-"`
	Author        string    `json:"author,omitempty" xml:"author,attr,omitempty"`
	Timestamp     time.Time `json:"timestamp" xml:"timestamp,attr"`
}

// Visibility maps a score onto the logistic curve 1 / (1 + e^(-score/2)).
func Visibility(score int) float64 {
	return 1 / (1 + math.Exp(-0.5*float64(score)))
}

// Formality is the aggregate moderation sign derived from the tagged
// descendants currently counted on this post.
func (p *Post) Formality() Auxiliary {
	return Auxiliary(sign(sign(p.CanonScore) - sign(p.SuppressScore)))
}

// AddScore adjusts the score and recomputes the cached visibility.
func (p *Post) AddScore(delta int) {
	p.Score += delta
	p.Visibility = Visibility(p.Score)
}

// ShortText returns the text cut to 30 characters, with a trailing "..."
// when it had to be shortened.
func (p *Post) ShortText() string {
	r := []rune(p.Text)
	if len(r) <= 30 {
		return p.Text
	}
	return string(r[:27]) + "..."
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// PostRecord is the flat, reference-free form of a post used by storage
// and file formats. Parent and Destination hold ids, empty when absent.
type PostRecord struct {
	ID          string    `json:"id" xml:"id,attr"`
	Parent      string    `json:"parent,omitempty" xml:"parent,attr,omitempty"`
	Destination string    `json:"destination,omitempty" xml:"destination,attr,omitempty"`
	Text        string    `json:"text" xml:"text"`
	Score       int       `json:"score,omitempty" xml:"score,attr,omitempty"`
	Auxiliary   Auxiliary `json:"auxiliary,omitempty" xml:"auxiliary,attr,omitempty"`
	Author      string    `json:"author,omitempty" xml:"author,attr,omitempty"`
	Timestamp   time.Time `json:"timestamp,omitempty" xml:"timestamp,attr,omitempty"`
}

// Record flattens the post into a PostRecord.
func (p *Post) Record() PostRecord {
	rec := PostRecord{
		ID:        p.ID,
		Text:      p.Text,
		Score:     p.Score,
		Auxiliary: p.Auxiliary,
		Author:    p.Author,
		Timestamp: p.Timestamp,
	}
	if p.Parent != nil {
		rec.Parent = p.Parent.ID
	}
	if p.Destination != nil {
		rec.Destination = p.Destination.ID
	}
	return rec
}
