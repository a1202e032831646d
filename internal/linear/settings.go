// Package linear unrolls the post graph around a focus post into a tree of
// view nodes, weighting every branch by visibility and cutting it off once
// the weight falls below the configured threshold.
package linear

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

// AverageVisibility is the nominal weight of one step through the graph.
const AverageVisibility = 0.4

var (
	ErrUnknownSortMethod = errors.New("unknown sort method")
	ErrInvalidSettings   = errors.New("invalid linearization settings")
	ErrNoRoot            = errors.New("no focus post")
)

// SortMethod orders the children or sources of a post before expansion.
type SortMethod string

const (
	SortBest   SortMethod = "best"
	SortWorst  SortMethod = "worst"
	SortOldest SortMethod = "oldest"
	SortNewest SortMethod = "newest"
	SortRandom SortMethod = "random"
)

// SortMethods lists every accepted method in display order.
var SortMethods = []SortMethod{SortBest, SortWorst, SortOldest, SortNewest, SortRandom}

// ParseSortMethod validates s against the fixed set of sort methods.
func ParseSortMethod(s string) (SortMethod, error) {
	m := SortMethod(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SortMethods {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortMethod, s)
}

// order returns a sorted copy of posts. Posts are held in creation order,
// so oldest is the identity and newest the reverse.
func (m SortMethod) order(posts []*model.Post, rnd *rand.Rand) []*model.Post {
	out := make([]*model.Post, len(posts))
	copy(out, posts)

	switch m {
	case SortBest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Visibility > out[j].Visibility })
	case SortWorst:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Visibility < out[j].Visibility })
	case SortNewest:
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	case SortRandom:
		rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return out
}

// Settings controls one linearization pass.
type Settings struct {
	ShowEllipses      bool
	CollapseRepeats   bool
	SeparateFormality bool
	DirectionBias     float64 // -1 favours parents and sources, 1 children and destinations
	DepthThreshold    float64
	SortMethod        SortMethod

	// Rand drives SortRandom. A time-seeded source is used when nil.
	Rand *rand.Rand
}

// DefaultSettings returns the settings a fresh session starts with.
func DefaultSettings() Settings {
	return Settings{
		ShowEllipses:      true,
		CollapseRepeats:   true,
		SeparateFormality: true,
		DirectionBias:     0,
		DepthThreshold:    5,
		SortMethod:        SortBest,
	}
}

// FromView converts the persisted view block of the configuration.
func FromView(v model.ViewSettings) (Settings, error) {
	method, err := ParseSortMethod(v.SortMethod)
	if err != nil {
		return Settings{}, err
	}
	s := Settings{
		ShowEllipses:      v.ShowEllipses,
		CollapseRepeats:   v.CollapseRepeats,
		SeparateFormality: v.SeparateFormality,
		DirectionBias:     v.DirectionBias,
		DepthThreshold:    v.DepthThreshold,
		SortMethod:        method,
	}
	return s, s.Validate()
}

// View converts s back into its configuration form.
func (s Settings) View() model.ViewSettings {
	return model.ViewSettings{
		ShowEllipses:      s.ShowEllipses,
		CollapseRepeats:   s.CollapseRepeats,
		SeparateFormality: s.SeparateFormality,
		DirectionBias:     s.DirectionBias,
		DepthThreshold:    s.DepthThreshold,
		SortMethod:        string(s.SortMethod),
	}
}

// Validate checks ranges and the sort method.
func (s Settings) Validate() error {
	if _, err := ParseSortMethod(string(s.SortMethod)); err != nil {
		return err
	}
	if math.IsNaN(s.DirectionBias) || s.DirectionBias < -1 || s.DirectionBias > 1 {
		return fmt.Errorf("%w: direction bias %v outside [-1, 1]", ErrInvalidSettings, s.DirectionBias)
	}
	if math.IsNaN(s.DepthThreshold) || math.IsInf(s.DepthThreshold, 0) || s.DepthThreshold < 0 {
		return fmt.Errorf("%w: depth threshold %v must be a finite value >= 0", ErrInvalidSettings, s.DepthThreshold)
	}
	return nil
}

// ForwardWeight is the decay applied when walking to children and destinations.
func (s Settings) ForwardWeight() float64 {
	return (s.DirectionBias + 1) * AverageVisibility
}

// BackwardWeight is the decay applied when walking to parents and sources.
func (s Settings) BackwardWeight() float64 {
	return -(s.DirectionBias - 1) * AverageVisibility
}

// Threshold is the weight below which a branch is no longer expanded.
func (s Settings) Threshold() float64 {
	return math.Pow(AverageVisibility, s.DepthThreshold)
}

func (s Settings) random() *rand.Rand {
	if s.Rand != nil {
		return s.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
