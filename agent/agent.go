// Package agent implements a chat assistant over the trade history, backed by Gemini models.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/portfolio-assistant/date"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
	// Print writes an answer, in markdown. Defaults to plain text.
	Print func(w io.Writer, markdown string) error
}

// New creates a new Agent, whose facilitator delegates to the experts.
//
// w receives the agent's output (e.g., os.Stdout), r provides the user input (e.g., os.Stdin).
func New(w io.Writer, r io.Reader, model string, clock *date.Clock, log zerolog.Logger, experts ...*Expert) *Agent {
	if model == "" {
		model = DefaultModel
	}
	a := &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(model, clock, experts...),
		Print: func(w io.Writer, markdown string) error {
			_, err := fmt.Fprintln(w, markdown)
			return err
		},
	}
	for _, e := range append([]*Expert{a.Facilitator}, experts...) {
		e.Log = log
	}
	return a
}

func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const prompt = "assist> "

// Run starts the interactive REPL session for the agent. prompts are asked first, as if typed.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Ask about your trades. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		// Flush prompts from the list and then ask for the user.
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		input = strings.TrimSpace(input)
		if input == "bye" {
			return nil
		}
		if input == "" {
			continue
		}

		content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		if err := a.Print(a.w, text(content)); err != nil {
			return err
		}
	}
}
