package renderer

// Clarification is the answer given when the time period of a question is not understood.
type Clarification struct {
	Message  string
	Examples []string
}

// NewClarification asks the user to rephrase the time period.
func NewClarification() *Clarification {
	return &Clarification{
		Message: "I didn't catch the time period. Could you say it another way?",
		Examples: []string{
			"last week",
			"yesterday",
			"the past 5 trading days",
			"November 18th",
			"last Monday",
		},
	}
}

// Speech returns the answer as it is said to the user.
func (c *Clarification) Speech() string {
	if len(c.Examples) < 3 {
		return c.Message
	}
	return c.Message + ` For example "` + c.Examples[0] + `", "` + c.Examples[1] + `" or "` + c.Examples[2] + `".`
}
