package agent

import (
	"github.com/etnz/portfolio-assistant/date"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// creates the facilitator
func newFacilitator(model string, clock *date.Clock, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a voice assistant answering questions about the user's trading account.
			Today is ` + clock.DemoToday().Format("Monday, January 2 2006") + `.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and keep context of your previous questions.

			Answer in short sentences that read well out loud. Do not invent trades or figures: every
			number you give comes from an expert. When the user's time period is not understood, ask
			them to say it another way.
		`}}},
		},
		Library: NewLibrary(experts),
		Log:     zerolog.Nop(),
	}
}

// NewAnalyst returns the expert of the trade history.
func NewAnalyst(model string, tools *Tools) *Expert {
	lib := tools.Functions()
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It reads the user's trade history: the trades made over a period,
		and the profit or loss realized by closing positions.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the user's trade history.
				Use the Tools to answer questions about the trades, pardon the approximative language
				of the other experts and figure out what they meant. Pass time periods as the user said them.
				Each tool returns an answer ready to be read: keep its figures unchanged.
			`}}},
		},
		Library: NewLibrary(lib),
		Log:     zerolog.Nop(),
	}
}

// NewTrader returns an expert of the markets, grounded with Google Search.
func NewTrader(model string) *Expert {
	return &Expert{
		Name: "Trader",
		Description: `This is an expert trader, aware of the financial products and the latest news about
		companies. Ask the Trader for context about a security, never about the user's trades.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in trading, you can search about companies, markets and funds.
			You leverage Google Search to ground your assertions.
			`}}},
		},
		Log: zerolog.Nop(),
	}
}
