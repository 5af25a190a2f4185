// Command brain is a unified AI CLI that routes a prompt to one of several
// LLM providers, or to all of them at once in deep thinking mode, where the
// individual answers are synthesized into one consolidated response.
// Conversation history is kept per named thread and survives restarts.
//
// Usage:
//
//	brain [flags] "prompt"
//	brain -deep "compare these approaches"
//	brain -code "write a worker pool in Go"
//	brain -interactive
//
// Credentials are read from MISTRAL_API_KEY, GEMINI_API_KEY, and
// ANTHROPIC_API_KEY (a .env file in the working directory is honored).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/leofalp/brain/core/brain"
	"github.com/leofalp/brain/core/dispatch"
	"github.com/leofalp/brain/core/synthesis"
	"github.com/leofalp/brain/internal/config"
	"github.com/leofalp/brain/internal/render"
	"github.com/leofalp/brain/providers/ai"
	"github.com/leofalp/brain/providers/ai/anthropic"
	"github.com/leofalp/brain/providers/ai/gemini"
	"github.com/leofalp/brain/providers/ai/mistral"
	"github.com/leofalp/brain/providers/history/jsonfile"
	"github.com/leofalp/brain/providers/observability"
	"github.com/leofalp/brain/providers/observability/slogobs"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		providerFlag    = flag.String("provider", "", "provider to query (mistral, gemini, claude)")
		deepFlag        = flag.Bool("deep", false, "deep thinking mode: query all providers and synthesize")
		codeFlag        = flag.Bool("code", false, "code generation mode")
		interactiveFlag = flag.Bool("interactive", false, "interactive chat mode")
		threadFlag      = flag.String("thread", "default", "conversation thread name")
		modelFlag       = flag.String("model", "", "model override")
		temperatureFlag = flag.Float64("temperature", 0, "sampling temperature override")
		maxTokensFlag   = flag.Int("max-tokens", 0, "max tokens override")
		outputFlag      = flag.String("output", "", "save the response to a file")
		configFlag      = flag.String("config", "config.yaml", "config file path")
	)
	flag.Parse()

	renderer := render.New(os.Stdout)

	cfg, err := config.Load(*configFlag)
	if err != nil {
		renderer.Error(err)
		return 1
	}

	observer := slogobs.New()
	ctx := observability.ContextWithObserver(context.Background(), observer)

	providers := []ai.Provider{mistral.New(), gemini.New(), anthropic.New()}
	dispatcher := dispatch.New(providers, cfg.PerCallTimeout())
	synthesizer := synthesis.New(dispatcher, cfg.SynthesisProvider, "", cfg.Generation())

	store, err := jsonfile.New(cfg.HistoryDir, cfg.MaxTurns)
	if err != nil {
		renderer.Error(err)
		return 1
	}

	b := brain.New(cfg, dispatcher, synthesizer, store)

	if *interactiveFlag {
		repl := &interactiveSession{
			brain:    b,
			cfg:      cfg,
			store:    store,
			renderer: renderer,
			thread:   *threadFlag,
			provider: *providerFlag,
		}
		return repl.run(ctx)
	}

	prompt := flag.Arg(0)
	if prompt == "" {
		renderer.Error(errors.New("please provide a prompt or use -interactive mode"))
		return 2
	}

	mode := brain.ModeSingle
	switch {
	case *deepFlag:
		mode = brain.ModeDeep
	case *codeFlag:
		mode = brain.ModeCode
	}

	response, err := b.Respond(ctx, brain.Request{
		Prompt:      prompt,
		Mode:        mode,
		Provider:    *providerFlag,
		Model:       *modelFlag,
		Thread:      *threadFlag,
		Temperature: float32(*temperatureFlag),
		MaxTokens:   *maxTokensFlag,
	})
	if err != nil {
		renderer.Error(err)
		return 1
	}

	renderer.Response(response)

	if *outputFlag != "" {
		if err := render.WriteFile(*outputFlag, prompt, response); err != nil {
			renderer.Error(err)
			return 1
		}
		renderer.Info(fmt.Sprintf("Response saved to %s", *outputFlag))
	}

	return 0
}
