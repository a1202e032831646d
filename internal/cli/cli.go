// Package cli provides the interactive command line of the brainstormer:
// a readline loop that turns typed lines into session commands and draws
// the page after every change.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/chzyer/readline"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/log"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/session"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/ui"
)

// ErrExit is returned by Execute when the user asks to leave.
var ErrExit = errors.New("exit requested")

const askPassword = "--ask"

// CLI represents the command-line interface
type CLI struct {
	manager     *session.SessionManager
	sessionID   string
	ui          *ui.UI
	out         io.Writer
	historyFile string
	logger      *log.Logger

	mu       sync.Mutex
	rl       *readline.Instance
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewCLI creates a CLI with its own session on manager, writing to out.
func NewCLI(manager *session.SessionManager, cfg *model.Config, logger *log.Logger, out io.Writer) (*CLI, error) {
	sessionID, err := manager.SessionAdd()
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &CLI{
		manager:     manager,
		sessionID:   sessionID,
		ui:          ui.NewUI(out, cfg.ColorMode),
		out:         out,
		historyFile: cfg.HistoryFile,
		logger:      logger,
		stopCh:      make(chan struct{}),
	}, nil
}

// Session returns the session the CLI drives.
func (c *CLI) Session() *session.Session {
	s, _ := c.manager.SessionGet(c.sessionID)
	return s
}

// Run reads and executes commands until exit, EOF or Stop.
func (c *CLI) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          c.Prompt(),
		HistoryFile:     c.historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          c.out,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	c.mu.Lock()
	c.rl = rl
	c.mu.Unlock()
	defer rl.Close()

	c.ui.Info("Welcome to the brainstormer! Use 'help' for the list of commands.")
	c.RenderPage()

	for {
		select {
		case <-c.stopCh:
			return nil
		default:
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			c.ui.Info("Use 'exit' or 'quit' to exit the program.")
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			select {
			case <-c.stopCh:
				return nil
			default:
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if err := c.Execute(line); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}
			c.ui.Error(err.Error())
		}
		rl.SetPrompt(c.Prompt())
	}
}

// Stop ends Run, interrupting a pending read.
func (c *CLI) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.rl != nil {
			c.rl.Close()
		}
	})
}

// Prompt builds the prompt from the session's author, graph name and
// unsaved state.
func (c *CLI) Prompt() string {
	s := c.Session()
	if s == nil {
		return "> "
	}
	return c.ui.Prompt(s.Author, s.Info.Name, s.Dirty)
}

// Execute runs one input line. Blank lines and lines starting with '#' are
// ignored.
func (c *CLI) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	ctx := context.Background()
	c.logger.Command(ctx, line)

	args := ExpandAlias(ParseArgs(line))
	if len(args) == 0 {
		return nil
	}
	switch strings.ToLower(args[0]) {
	case "help":
		c.printHelp(args[1:])
		return nil
	case "exit", "quit":
		return ErrExit
	case "show":
		c.RenderPage()
		return nil
	}

	cmd := ParseCommand(args)
	if err := c.askPassword(&cmd); err != nil {
		return err
	}

	result, err := c.manager.SessionRun(c.sessionID, cmd)
	if err != nil {
		return err
	}
	c.display(cmd, result)
	if redraws(cmd) {
		c.RenderPage()
	}
	return nil
}

// ExecuteScript runs the commands of a file line by line, stopping at the
// first failing command.
func (c *CLI) ExecuteScript(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c.ui.Println(c.Prompt() + line)
		if err := c.Execute(line); err != nil {
			if errors.Is(err, ErrExit) {
				return err
			}
			return fmt.Errorf("%s:%d: %w", filename, lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	return nil
}

// RenderPage draws the session's page with the selection and draft marks.
func (c *CLI) RenderPage() {
	s := c.Session()
	if s == nil {
		return
	}
	pages := ui.NewPageUI(c.out, c.ui.UseColor(), c.ui.Width())
	pages.Render(s.Page, ui.PageState{
		Selected:    s.Selected,
		Now:         s.Now(),
		ReplyTo:     s.Draft.Parent,
		Destination: s.Draft.Destination,
	})
}

// askPassword replaces a trailing --ask argument of the author commands
// with a password read without echo.
func (c *CLI) askPassword(cmd *model.Command) error {
	if cmd.Scope != "author" || len(cmd.Args) != 2 || cmd.Args[1] != askPassword {
		return nil
	}
	password, err := c.ui.ReadPassword("Password: ")
	if err != nil {
		return err
	}
	cmd.Args = []string{cmd.Args[0], password}
	return nil
}

// redraws reports whether cmd changes what the page shows.
func redraws(cmd model.Command) bool {
	switch cmd.Scope {
	case "nav":
		return cmd.Operation != "history"
	case "post":
		switch cmd.Operation {
		case "reply", "link", "clear", "submit", "score":
			return true
		}
	case "view":
		return cmd.Operation == "set"
	case "graph":
		switch cmd.Operation {
		case "new", "open", "import":
			return true
		}
	}
	return false
}
