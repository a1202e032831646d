package session

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/log"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/render"
)

// HistoryView is the result of 'nav history'.
type HistoryView struct {
	Entries []*model.Post
	Index   int
}

// initNavCommandHandlers initializes nav command handlers
func initNavCommandHandlers() map[string]CommandHandler {
	handlers := map[string]CommandHandler{
		"root":    handleNavRoot,
		"back":    handleNavBack,
		"forward": handleNavForward,
		"select":  handleNavSelect,
		"history": handleNavHistory,
	}
	for _, m := range []render.Move{
		render.MoveUp, render.MoveDown, render.MoveSkipUp, render.MoveSkipDown,
		render.MoveLeft, render.MoveRight, render.MoveRightReverse,
	} {
		handlers[m.String()] = handleNavMove(m)
	}
	return handlers
}

// handleNavMove returns the handler of one cursor movement
func handleNavMove(m render.Move) CommandHandler {
	return func(s *Session, cmd model.Command) (interface{}, error) {
		from := s.Selected
		to := s.Move(m)
		s.logger.Debug(context.Background(), "Selection moved", log.Fields{"move": m.String(), "from": from, "to": to})
		return to, nil
	}
}

// handleNavRoot handles the nav root command
func handleNavRoot(s *Session, cmd model.Command) (interface{}, error) {
	if err := s.Reroot(); err != nil {
		return nil, fmt.Errorf("failed to re-root page: %w", err)
	}
	return s.Selected, nil
}

// handleNavBack handles the nav back command
func handleNavBack(s *Session, cmd model.Command) (interface{}, error) {
	moved, err := s.Back()
	if err != nil {
		return nil, err
	}
	if !moved {
		return "already at the oldest page", nil
	}
	return s.Selected, nil
}

// handleNavForward handles the nav forward command
func handleNavForward(s *Session, cmd model.Command) (interface{}, error) {
	moved, err := s.Forward()
	if err != nil {
		return nil, err
	}
	if !moved {
		return "already at the newest page", nil
	}
	return s.Selected, nil
}

// handleNavSelect handles the nav select command
func handleNavSelect(s *Session, cmd model.Command) (interface{}, error) {
	line, err := strconv.Atoi(cmd.Args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: line number '%s'", ErrInvalidArgument, cmd.Args[0])
	}
	if err := s.Select(line); err != nil {
		return nil, err
	}
	return s.Selected, nil
}

// handleNavHistory handles the nav history command
func handleNavHistory(s *Session, cmd model.Command) (interface{}, error) {
	return HistoryView{Entries: s.History.Entries(), Index: s.History.Index()}, nil
}
