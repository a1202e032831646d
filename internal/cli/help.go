package cli

import (
	"fmt"
	"sort"
	"strings"
)

// CommandHelp represents the structure of help information for a specific command.
type CommandHelp struct {
	Scope     string
	Operation string
	ShortDesc string
	LongDesc  string
	Syntax    string
	Arguments []string
	Examples  []string
}

// printHelp prints the help message based on the provided arguments
func (c *CLI) printHelp(args []string) {
	switch len(args) {
	case 0:
		c.showGeneralHelp()
	case 1:
		c.showScopeHelp(strings.ToLower(args[0]))
	case 2:
		c.showOperationHelp(strings.ToLower(args[0]), strings.ToLower(args[1]))
	default:
		c.ui.Warning("Invalid help command. Use 'help [scope] [operation]'")
	}
}

// showGeneralHelp displays an overview of all available commands grouped by scope
func (c *CLI) showGeneralHelp() {
	c.ui.Println("Command syntax: <scope> <operation> [arguments]")
	c.ui.Println("\nAvailable commands:")
	currentScope := ""
	for _, cmd := range commandHelps {
		if cmd.Scope != currentScope {
			c.ui.Printf("\n%s:\n", cmd.Scope)
			currentScope = cmd.Scope
		}
		c.ui.Printf("  %-10s %s\n", cmd.Operation, cmd.ShortDesc)
	}

	c.ui.Println("\nShortcuts:")
	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c.ui.Printf("  %-10s %s\n", k, strings.Join(aliases[k], " "))
	}
	c.ui.Println("\nOther: show (redraw the page), help [scope] [operation], exit")
}

// showScopeHelp displays help information for all commands within a specific scope
func (c *CLI) showScopeHelp(scope string) {
	found := false
	for _, cmd := range commandHelps {
		if cmd.Scope == scope {
			if !found {
				c.ui.Printf("Commands for %s:\n\n", scope)
				found = true
			}
			c.ui.Printf("%-10s %s\n", cmd.Operation, cmd.ShortDesc)
		}
	}
	if !found {
		c.ui.Warning(fmt.Sprintf("No help found for %s", scope))
	}
}

// showOperationHelp displays detailed help information for a specific operation within a scope
func (c *CLI) showOperationHelp(scope, operation string) {
	for _, cmd := range commandHelps {
		if cmd.Scope != scope || cmd.Operation != operation {
			continue
		}
		c.ui.Printf("Command: %s %s\n", scope, operation)
		c.ui.Printf("Description: %s\n", cmd.LongDesc)
		c.ui.Printf("Syntax: %s\n", cmd.Syntax)
		if len(cmd.Arguments) > 0 {
			c.ui.Println("Arguments:")
			for _, arg := range cmd.Arguments {
				c.ui.Printf("  %s\n", arg)
			}
		}
		if len(cmd.Examples) > 0 {
			c.ui.Println("Examples:")
			for _, ex := range cmd.Examples {
				c.ui.Printf("  %s\n", ex)
			}
		}
		return
	}
	c.ui.Warning(fmt.Sprintf("No help found for %s %s", scope, operation))
}

// commandHelps is a slice of CommandHelp structs containing help information for all commands.
var commandHelps = []CommandHelp{
	{
		Scope:     "nav",
		Operation: "up",
		ShortDesc: "Select the previous line",
		LongDesc:  "Moves the selection to the nearest line above, skipping spacers.",
		Syntax:    "nav up",
		Examples:  []string{"nav up", "k"},
	},
	{
		Scope:     "nav",
		Operation: "down",
		ShortDesc: "Select the next line",
		LongDesc:  "Moves the selection to the nearest line below, skipping spacers.",
		Syntax:    "nav down",
		Examples:  []string{"nav down", "j"},
	},
	{
		Scope:     "nav",
		Operation: "skipup",
		ShortDesc: "Previous line at the same depth",
		LongDesc:  "Moves up to the previous line at the same depth without leaving the current branch.",
		Syntax:    "nav skipup",
		Examples:  []string{"nav skipup", "K"},
	},
	{
		Scope:     "nav",
		Operation: "skipdown",
		ShortDesc: "Next line at the same depth",
		LongDesc:  "Moves down to the next line at the same depth without leaving the current branch.",
		Syntax:    "nav skipdown",
		Examples:  []string{"nav skipdown", "J"},
	},
	{
		Scope:     "nav",
		Operation: "left",
		ShortDesc: "Select the line this one hangs from",
		LongDesc:  "Moves to the line one level shallower that generated the selected line.",
		Syntax:    "nav left",
		Examples:  []string{"nav left", "h"},
	},
	{
		Scope:     "nav",
		Operation: "right",
		ShortDesc: "Select the first deeper line below",
		LongDesc:  "Moves down to the first line one level deeper than the selected line.",
		Syntax:    "nav right",
		Examples:  []string{"nav right", "l"},
	},
	{
		Scope:     "nav",
		Operation: "rright",
		ShortDesc: "Select the first deeper line above",
		LongDesc:  "Moves up to the first line one level deeper than the selected line.",
		Syntax:    "nav rright",
		Examples:  []string{"nav rright", "L"},
	},
	{
		Scope:     "nav",
		Operation: "root",
		ShortDesc: "Re-root the page on the selection",
		LongDesc:  "Renders the page around the selected post and records it in the history.",
		Syntax:    "nav root",
		Examples:  []string{"nav root", "."},
	},
	{
		Scope:     "nav",
		Operation: "back",
		ShortDesc: "Go to the previous focus",
		LongDesc:  "Renders the page around the previous entry of the focus history.",
		Syntax:    "nav back",
		Examples:  []string{"nav back", "b"},
	},
	{
		Scope:     "nav",
		Operation: "forward",
		ShortDesc: "Go to the next focus",
		LongDesc:  "Renders the page around the next entry of the focus history.",
		Syntax:    "nav forward",
		Examples:  []string{"nav forward", "f"},
	},
	{
		Scope:     "nav",
		Operation: "select",
		ShortDesc: "Select a line by number",
		LongDesc:  "Puts the selection on the given line. Spacer lines cannot be selected.",
		Syntax:    "nav select <line>",
		Arguments: []string{"line: The line number shown in the left column"},
		Examples:  []string{"nav select 4"},
	},
	{
		Scope:     "nav",
		Operation: "history",
		ShortDesc: "Show the focus history",
		LongDesc:  "Lists the posts the page was rooted at, marking the current one.",
		Syntax:    "nav history",
		Examples:  []string{"nav history"},
	},
	{
		Scope:     "post",
		Operation: "reply",
		ShortDesc: "Reply to the selection",
		LongDesc:  "Makes the selected post the parent of the draft.",
		Syntax:    "post reply",
		Examples:  []string{"post reply"},
	},
	{
		Scope:     "post",
		Operation: "link",
		ShortDesc: "Annotate the selection",
		LongDesc:  "Makes the selected post the destination of the draft.",
		Syntax:    "post link",
		Examples:  []string{"post link"},
	},
	{
		Scope:     "post",
		Operation: "clear",
		ShortDesc: "Clear the draft",
		LongDesc:  "Drops the pending parent and destination of the draft.",
		Syntax:    "post clear",
		Examples:  []string{"post clear"},
	},
	{
		Scope:     "post",
		Operation: "submit",
		ShortDesc: "Submit the draft",
		LongDesc:  "Adds a post under the draft parent. A leading '+' tags it canon, a leading '-' suppress.",
		Syntax:    "post submit <text>",
		Arguments: []string{"text: The post text. Use quotes to keep spacing"},
		Examples:  []string{"post submit good point", "post submit \"+this is settled\""},
	},
	{
		Scope:     "post",
		Operation: "score",
		ShortDesc: "Vote on the selected reply",
		LongDesc:  "Raises or lowers the score of the selected reply line by one.",
		Syntax:    "post score <+1|-1>",
		Arguments: []string{"delta: +1 or -1"},
		Examples:  []string{"post score +1", "+", "-"},
	},
	{
		Scope:     "post",
		Operation: "info",
		ShortDesc: "Show the selected post",
		LongDesc:  "Displays the fields of the selected post, its role on the page and its formality.",
		Syntax:    "post info",
		Examples:  []string{"post info"},
	},
	{
		Scope:     "post",
		Operation: "list",
		ShortDesc: "List all posts",
		LongDesc:  "Lists every post of the graph in creation order.",
		Syntax:    "post list",
		Examples:  []string{"post list"},
	},
	{
		Scope:     "post",
		Operation: "find",
		ShortDesc: "Find posts",
		LongDesc:  "Lists the posts whose text contains the query or whose id equals it.",
		Syntax:    "post find <query>",
		Arguments: []string{"query: Text to search for, case-insensitive"},
		Examples:  []string{"post find budget", "post find X12"},
	},
	{
		Scope:     "view",
		Operation: "show",
		ShortDesc: "Show the view settings",
		LongDesc:  "Lists the linearization settings of the session.",
		Syntax:    "view show",
		Examples:  []string{"view show"},
	},
	{
		Scope:     "view",
		Operation: "set",
		ShortDesc: "Change a view setting",
		LongDesc:  "Changes one linearization setting and redraws the page at the same focus.",
		Syntax:    "view set <option> <value>",
		Arguments: []string{
			"option: show_ellipses, collapse_repeats, separate_formality, direction_bias, depth_threshold or sort_method",
			"value: true/false, a number, or best|worst|oldest|newest|random",
		},
		Examples: []string{"view set sort_method newest", "view set direction_bias -0.5"},
	},
	{
		Scope:     "graph",
		Operation: "new",
		ShortDesc: "Start a new graph",
		LongDesc:  "Starts an unnamed graph whose root post carries the title.",
		Syntax:    "graph new [title] [--force]",
		Arguments: []string{"title: (Optional) Text of the root post", "--force: (Optional) Discard unsaved changes"},
		Examples:  []string{"graph new \"what should we build\""},
	},
	{
		Scope:     "graph",
		Operation: "save",
		ShortDesc: "Save the graph",
		LongDesc:  "Stores the graph in the database. Later posts and votes are saved as they happen.",
		Syntax:    "graph save [name]",
		Arguments: []string{"name: (Optional) Name to store under, defaults to the current name"},
		Examples:  []string{"graph save ideas", "graph save"},
	},
	{
		Scope:     "graph",
		Operation: "open",
		ShortDesc: "Open a stored graph",
		LongDesc:  "Loads a graph from the database and renders it from its root.",
		Syntax:    "graph open <name> [--force]",
		Arguments: []string{"name: The stored graph", "--force: (Optional) Discard unsaved changes"},
		Examples:  []string{"graph open ideas"},
	},
	{
		Scope:     "graph",
		Operation: "list",
		ShortDesc: "List stored graphs",
		LongDesc:  "Lists the graphs in the database with their post counts.",
		Syntax:    "graph list",
		Examples:  []string{"graph list"},
	},
	{
		Scope:     "graph",
		Operation: "delete",
		ShortDesc: "Delete a stored graph",
		LongDesc:  "Removes a graph and its posts from the database. An open copy stays in memory.",
		Syntax:    "graph delete <name>",
		Arguments: []string{"name: The stored graph"},
		Examples:  []string{"graph delete ideas"},
	},
	{
		Scope:     "graph",
		Operation: "import",
		ShortDesc: "Import a graph from a file",
		LongDesc:  "Reads a graph from a JSON, XML or line-format file. The format defaults to the file extension.",
		Syntax:    "graph import <file> [json|xml|bug] [--force]",
		Arguments: []string{"file: The file to read", "format: (Optional) json, xml or bug", "--force: (Optional) Discard unsaved changes"},
		Examples:  []string{"graph import ideas.json", "graph import dump.txt bug"},
	},
	{
		Scope:     "graph",
		Operation: "export",
		ShortDesc: "Export the graph to a file",
		LongDesc:  "Writes the graph to a JSON, XML or line-format file. The format defaults to the file extension.",
		Syntax:    "graph export <file> [json|xml|bug]",
		Arguments: []string{"file: The file to write", "format: (Optional) json, xml or bug"},
		Examples:  []string{"graph export ideas.xml", "graph export ideas.bug"},
	},
	{
		Scope:     "author",
		Operation: "add",
		ShortDesc: "Register an author",
		LongDesc:  "Registers an author. With a password only that password can select the author.",
		Syntax:    "author add <name> [password]",
		Arguments: []string{"name: The author name", "password: (Optional) The password, --ask to type it hidden"},
		Examples:  []string{"author add ann", "author add bob --ask"},
	},
	{
		Scope:     "author",
		Operation: "select",
		ShortDesc: "Post as an author",
		LongDesc:  "Makes the author the one new posts are created by. Protected authors need their password.",
		Syntax:    "author select <name> [password]",
		Arguments: []string{"name: The author name", "password: (Optional) The password, --ask to type it hidden"},
		Examples:  []string{"author select ann", "author select bob --ask"},
	},
	{
		Scope:     "author",
		Operation: "list",
		ShortDesc: "List authors",
		LongDesc:  "Lists registered authors and the authors of the open graph.",
		Syntax:    "author list",
		Examples:  []string{"author list"},
	},
}
