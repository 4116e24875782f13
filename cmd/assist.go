package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/portfolio-assistant/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	model string
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `pca assist [-model <model>] [<first question>]

  Starts an interactive session with the AI assistant about your trades.
  The Gemini API key is read from GEMINI_API_KEY.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", "", "Gemini model, overrides PCA_GEMINI_MODEL")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, log, err := setup()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	model := cfg.GeminiModel
	if c.model != "" {
		model = c.model
	}
	initialPrompt := strings.Join(f.Args(), " ")

	db, err := openTrades(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	clock := cfg.Clock()
	analyst := agent.NewAnalyst(model, agent.NewTools(db, clock, cfg.Account))
	trader := agent.NewTrader(model)
	a := agent.New(os.Stdout, os.Stdin, model, clock, log, analyst, trader)
	a.Print = func(w io.Writer, markdown string) error {
		printMarkdown(markdown)
		return nil
	}

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
