package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/leofalp/brain/core/brain"
	"github.com/leofalp/brain/internal/config"
	"github.com/leofalp/brain/internal/render"
	"github.com/leofalp/brain/internal/utils"
	"github.com/leofalp/brain/providers/history"
)

const interactiveHelp = `Available commands:
  /deep <question>   use deep thinking mode
  /provider <name>   switch provider (mistral, gemini, claude)
  /thread <name>     switch conversation thread
  /history           show recent conversation history
  /config            show current configuration
  help               show this help
  quit               exit interactive mode`

// interactiveSession is the line-oriented chat loop. Thread and provider
// selection are session state; everything else is delegated to the brain.
type interactiveSession struct {
	brain    *brain.Brain
	cfg      *config.Config
	store    history.Store
	renderer *render.Renderer
	thread   string
	provider string
}

func (s *interactiveSession) run(ctx context.Context) int {
	fmt.Println("Brain - Interactive Mode")
	fmt.Println("Type 'quit' to exit, 'help' for commands")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("\n[%s] You: ", s.thread)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "quit" || line == "exit" || line == "q":
			fmt.Println("Goodbye!")
			return 0
		case line == "help":
			fmt.Println(interactiveHelp)
			continue
		case strings.HasPrefix(line, "/"):
			s.handleCommand(ctx, line)
			continue
		}

		s.ask(ctx, line, brain.ModeSingle)
	}

	return 0
}

// handleCommand dispatches one slash command.
func (s *interactiveSession) handleCommand(ctx context.Context, command string) {
	cmd, args, _ := strings.Cut(command[1:], " ")
	args = strings.TrimSpace(args)

	switch cmd {
	case "deep":
		if args == "" {
			s.renderer.Error(fmt.Errorf("usage: /deep <question>"))
			return
		}
		s.ask(ctx, args, brain.ModeDeep)
	case "provider":
		if config.CredentialEnvVar(args) == "" {
			s.renderer.Error(fmt.Errorf("unknown provider: %s", args))
			return
		}
		s.provider = args
		s.renderer.Info("Switched to " + args + " provider")
	case "thread":
		if args == "" {
			s.renderer.Error(fmt.Errorf("usage: /thread <name>"))
			return
		}
		s.thread = args
		s.renderer.Info("Switched to thread: " + args)
	case "history":
		s.showHistory(ctx)
	case "config":
		fmt.Println(utils.JSONToString(s.cfg, true))
	default:
		s.renderer.Error(fmt.Errorf("unknown command: /%s", cmd))
	}
}

// ask runs one request/response cycle and renders the result. Interactive
// errors are reported and the loop continues.
func (s *interactiveSession) ask(ctx context.Context, prompt string, mode brain.Mode) {
	response, err := s.brain.Respond(ctx, brain.Request{
		Prompt:   prompt,
		Mode:     mode,
		Provider: s.provider,
		Thread:   s.thread,
	})
	if err != nil {
		s.renderer.Error(err)
		return
	}
	s.renderer.Response(response)
}

// showHistory prints the last turns of the current thread.
func (s *interactiveSession) showHistory(ctx context.Context) {
	turns, err := s.store.LastTurns(ctx, s.thread, 10)
	if err != nil {
		s.renderer.Error(err)
		return
	}
	if len(turns) == 0 {
		s.renderer.Info("No conversation history")
		return
	}
	for _, turn := range turns {
		who := string(turn.Role)
		if turn.Provider != "" {
			who += " (" + turn.Provider + ")"
		}
		fmt.Printf("%s %s: %s\n",
			turn.Timestamp.Format("2006-01-02 15:04:05"),
			who,
			utils.TruncateString(turn.Content, 100),
		)
	}
}
