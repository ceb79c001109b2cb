package flow

// Button is one inline choice attached to a prompt. Either Action or URL is
// set, never both.
type Button struct {
	Label  string
	Action Action
	URL    string
}

// Prompt is one outgoing message. ReplyRows describes a one-time reply
// keyboard, Inline describes inline button rows, RemoveReply drops a
// previously shown reply keyboard. Text is Markdown.
type Prompt struct {
	Text        string
	ReplyRows   [][]string
	RemoveReply bool
	Inline      [][]Button
}

func textPrompt(text string) Prompt {
	return Prompt{Text: text}
}

func choicePrompt(text string, rows [][]string) Prompt {
	return Prompt{Text: text, ReplyRows: rows}
}

// cancelRow is the "back home" escape hatch shown on free-text steps.
func cancelRow() []Button {
	return []Button{{Label: msgBtnHome, Action: Action{Kind: ActCancel}}}
}

func cancellablePrompt(text string) Prompt {
	return Prompt{Text: text, Inline: [][]Button{cancelRow()}}
}
