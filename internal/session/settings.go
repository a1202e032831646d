package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/event"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/linear"
)

// ViewOptions lists the option names accepted by SetOption.
var ViewOptions = []string{
	"show_ellipses",
	"collapse_repeats",
	"separate_formality",
	"direction_bias",
	"depth_threshold",
	"sort_method",
}

// SetOption changes one linearization setting and re-renders at the same
// focus. Invalid values leave the settings untouched.
func (s *Session) SetOption(option, value string) error {
	next := s.Settings
	var err error

	switch strings.ReplaceAll(strings.ToLower(option), "-", "_") {
	case "show_ellipses":
		next.ShowEllipses, err = strconv.ParseBool(value)
	case "collapse_repeats":
		next.CollapseRepeats, err = strconv.ParseBool(value)
	case "separate_formality":
		next.SeparateFormality, err = strconv.ParseBool(value)
	case "direction_bias":
		next.DirectionBias, err = strconv.ParseFloat(value, 64)
	case "depth_threshold":
		next.DepthThreshold, err = strconv.ParseFloat(value, 64)
	case "sort_method":
		next.SortMethod, err = linear.ParseSortMethod(value)
	default:
		return fmt.Errorf("%w '%s', expected one of %s", ErrUnknownOption, option, strings.Join(ViewOptions, ", "))
	}
	if err != nil {
		return fmt.Errorf("%w: %s = %q: %v", ErrInvalidArgument, option, value, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}

	s.Settings = next
	s.publish(event.SettingsChanged, s.Settings.View())
	return s.Refresh()
}
