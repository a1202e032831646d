package session

import (
	"context"
	"fmt"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/log"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

const forceFlag = "--force"

// initViewCommandHandlers initializes view command handlers
func initViewCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"show": handleViewShow,
		"set":  handleViewSet,
	}
}

// initGraphCommandHandlers initializes graph command handlers
func initGraphCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"new":    handleGraphNew,
		"save":   handleGraphSave,
		"open":   handleGraphOpen,
		"list":   handleGraphList,
		"delete": handleGraphDelete,
		"import": handleGraphImport,
		"export": handleGraphExport,
	}
}

// initAuthorCommandHandlers initializes author command handlers
func initAuthorCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"add":    handleAuthorAdd,
		"select": handleAuthorSelect,
		"list":   handleAuthorList,
	}
}

// handleViewShow handles the view show command
func handleViewShow(s *Session, cmd model.Command) (interface{}, error) {
	return s.Settings.View(), nil
}

// handleViewSet handles the view set command
func handleViewSet(s *Session, cmd model.Command) (interface{}, error) {
	if err := s.SetOption(cmd.Args[0], cmd.Args[1]); err != nil {
		return nil, err
	}
	return s.Settings.View(), nil
}

// handleGraphNew handles the graph new command
func handleGraphNew(s *Session, cmd model.Command) (interface{}, error) {
	args, force := parseFlag(cmd.Args, forceFlag)
	if err := s.GraphNew(optionalArg(args, 0), force); err != nil {
		return nil, err
	}
	return nil, nil
}

// handleGraphSave handles the graph save command
func handleGraphSave(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	info, err := s.GraphSave(optionalArg(cmd.Args, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to save graph: %w", err)
	}
	s.logger.Info(ctx, "Graph saved", log.Fields{"name": info.Name, "id": info.ID, "posts": info.PostCount})
	return info, nil
}

// handleGraphOpen handles the graph open command
func handleGraphOpen(s *Session, cmd model.Command) (interface{}, error) {
	args, force := parseFlag(cmd.Args, forceFlag)
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: usage: %s", ErrInvalidCommand, Usage(cmd.Scope, cmd.Operation))
	}
	if err := s.GraphOpen(args[0], force); err != nil {
		return nil, fmt.Errorf("failed to open graph: %w", err)
	}
	return nil, nil
}

// handleGraphList handles the graph list command
func handleGraphList(s *Session, cmd model.Command) (interface{}, error) {
	return s.GraphList()
}

// handleGraphDelete handles the graph delete command
func handleGraphDelete(s *Session, cmd model.Command) (interface{}, error) {
	if err := s.GraphDelete(cmd.Args[0]); err != nil {
		return nil, fmt.Errorf("failed to delete graph: %w", err)
	}
	return nil, nil
}

// handleGraphImport handles the graph import command
func handleGraphImport(s *Session, cmd model.Command) (interface{}, error) {
	args, force := parseFlag(cmd.Args, forceFlag)
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("%w: usage: %s", ErrInvalidCommand, Usage(cmd.Scope, cmd.Operation))
	}
	if err := s.GraphImport(args[0], optionalArg(args, 1), force); err != nil {
		return nil, fmt.Errorf("failed to import graph: %w", err)
	}
	return nil, nil
}

// handleGraphExport handles the graph export command
func handleGraphExport(s *Session, cmd model.Command) (interface{}, error) {
	if err := s.GraphExport(cmd.Args[0], optionalArg(cmd.Args, 1)); err != nil {
		return nil, err
	}
	return nil, nil
}

// handleAuthorAdd handles the author add command
func handleAuthorAdd(s *Session, cmd model.Command) (interface{}, error) {
	if err := s.AuthorAdd(cmd.Args[0], optionalArg(cmd.Args, 1)); err != nil {
		return nil, fmt.Errorf("failed to add author: %w", err)
	}
	return nil, nil
}

// handleAuthorSelect handles the author select command
func handleAuthorSelect(s *Session, cmd model.Command) (interface{}, error) {
	if err := s.AuthorSelect(cmd.Args[0], optionalArg(cmd.Args, 1)); err != nil {
		return nil, err
	}
	return s.Author, nil
}

// handleAuthorList handles the author list command
func handleAuthorList(s *Session, cmd model.Command) (interface{}, error) {
	return s.AuthorList()
}

// parseFlag removes flag from args and reports whether it was present.
func parseFlag(args []string, flag string) ([]string, bool) {
	out := make([]string, 0, len(args))
	found := false
	for _, a := range args {
		if a == flag {
			found = true
			continue
		}
		out = append(out, a)
	}
	return out, found
}

// optionalArg returns args[i] or the empty string.
func optionalArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
