package session

import (
	"errors"
	"fmt"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

var ErrInvalidCommand = errors.New("invalid command")

// arity is the accepted argument count of one operation; max < 0 means
// any number of trailing arguments.
type arity struct {
	min, max int
	usage    string
}

var commandArities = map[string]map[string]arity{
	"nav": {
		"up":       {0, 0, "nav up"},
		"down":     {0, 0, "nav down"},
		"skipup":   {0, 0, "nav skipup"},
		"skipdown": {0, 0, "nav skipdown"},
		"left":     {0, 0, "nav left"},
		"right":    {0, 0, "nav right"},
		"rright":   {0, 0, "nav rright"},
		"root":     {0, 0, "nav root"},
		"back":     {0, 0, "nav back"},
		"forward":  {0, 0, "nav forward"},
		"select":   {1, 1, "nav select <line>"},
		"history":  {0, 0, "nav history"},
	},
	"post": {
		"reply":  {0, 0, "post reply"},
		"link":   {0, 0, "post link"},
		"clear":  {0, 0, "post clear"},
		"submit": {1, -1, "post submit <text>"},
		"score":  {1, 1, "post score <+1|-1>"},
		"info":   {0, 0, "post info"},
		"list":   {0, 0, "post list"},
		"find":   {1, -1, "post find <query>"},
	},
	"view": {
		"show": {0, 0, "view show"},
		"set":  {2, 2, "view set <option> <value>"},
	},
	"graph": {
		"new":    {0, 2, "graph new [title] [--force]"},
		"save":   {0, 1, "graph save [name]"},
		"open":   {1, 2, "graph open <name> [--force]"},
		"list":   {0, 0, "graph list"},
		"delete": {1, 1, "graph delete <name>"},
		"import": {1, 3, "graph import <file> [json|xml|bug] [--force]"},
		"export": {1, 2, "graph export <file> [json|xml|bug]"},
	},
	"author": {
		"add":    {1, 2, "author add <name> [password]"},
		"select": {1, 2, "author select <name> [password]"},
		"list":   {0, 0, "author list"},
	},
}

// ValidateCommand checks the scope, the operation and the argument count.
func ValidateCommand(cmd model.Command) error {
	if cmd.Scope == "" {
		return fmt.Errorf("%w: command scope is required", ErrInvalidCommand)
	}
	ops, ok := commandArities[cmd.Scope]
	if !ok {
		return fmt.Errorf("%w: unknown scope '%s'", ErrInvalidCommand, cmd.Scope)
	}
	if cmd.Operation == "" {
		return fmt.Errorf("%w: %s command requires an operation", ErrInvalidCommand, cmd.Scope)
	}
	a, ok := ops[cmd.Operation]
	if !ok {
		return fmt.Errorf("%w: unknown %s operation '%s'", ErrInvalidCommand, cmd.Scope, cmd.Operation)
	}
	if n := len(cmd.Args); n < a.min || (a.max >= 0 && n > a.max) {
		return fmt.Errorf("%w: usage: %s", ErrInvalidCommand, a.usage)
	}
	return nil
}

// Usage returns the syntax line of an operation, empty when unknown.
func Usage(scope, operation string) string {
	return commandArities[scope][operation].usage
}
