package cli

import (
	"strings"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

// aliases expand a single leading token into a full command.
var aliases = map[string][]string{
	"k": {"nav", "up"},
	"j": {"nav", "down"},
	"K": {"nav", "skipup"},
	"J": {"nav", "skipdown"},
	"h": {"nav", "left"},
	"l": {"nav", "right"},
	"L": {"nav", "rright"},
	".": {"nav", "root"},
	"b": {"nav", "back"},
	"f": {"nav", "forward"},
	"+": {"post", "score", "+1"},
	"-": {"post", "score", "-1"},
}

// ParseArgs splits input on spaces, keeping double-quoted runs together.
func ParseArgs(input string) []string {
	var args []string
	var currentArg strings.Builder
	inQuotes := false
	quoted := false

	for _, char := range input {
		switch char {
		case '"':
			inQuotes = !inQuotes
			quoted = true
		case ' ', '\t':
			if !inQuotes {
				if currentArg.Len() > 0 || quoted {
					args = append(args, currentArg.String())
					currentArg.Reset()
				}
				quoted = false
			} else {
				currentArg.WriteRune(char)
			}
		default:
			currentArg.WriteRune(char)
		}
	}

	if currentArg.Len() > 0 || quoted {
		args = append(args, currentArg.String())
	}

	return args
}

// ExpandAlias replaces an alias in the first position by its command.
func ExpandAlias(args []string) []string {
	if len(args) == 0 {
		return args
	}
	expansion, ok := aliases[args[0]]
	if !ok {
		return args
	}
	out := make([]string, 0, len(expansion)+len(args)-1)
	out = append(out, expansion...)
	return append(out, args[1:]...)
}

// ParseCommand turns parsed arguments into a command. Scope and operation
// are case-insensitive, arguments are kept as typed.
func ParseCommand(args []string) model.Command {
	cmd := model.Command{Args: []string{}}
	if len(args) > 0 {
		cmd.Scope = strings.ToLower(args[0])
	}
	if len(args) > 1 {
		cmd.Operation = strings.ToLower(args[1])
		cmd.Args = args[2:]
	}
	return cmd
}
