package editor

// Prompter asks the user questions on behalf of editor commands. The
// calls block until answered.
type Prompter interface {
	// Confirm asks a yes/no question.
	Confirm(msg string) bool
	// Input asks for a line of text, prefilled with value. The second
	// result is false when the user cancels.
	Input(label, value string) (string, bool)
	// Alert shows a message.
	Alert(msg string)
}

// Decline answers no to everything and discards alerts.
type Decline struct{}

func (Decline) Confirm(string) bool                 { return false }
func (Decline) Input(string, string) (string, bool) { return "", false }
func (Decline) Alert(string)                        {}

// Accept answers yes to every confirmation and keeps the suggested value
// for input. Alerts are logged.
type Accept struct{}

func (Accept) Confirm(string) bool                         { return true }
func (Accept) Input(_ string, value string) (string, bool) { return value, true }
func (Accept) Alert(msg string)                            { logf("%s", msg) }
