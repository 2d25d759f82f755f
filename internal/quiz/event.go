package quiz

import "context"

// EventKind distinguishes the shapes of incoming events.
type EventKind int

const (
	EventCommand EventKind = iota
	EventTap
	EventText
)

func (k EventKind) String() string {
	switch k {
	case EventCommand:
		return "command"
	case EventTap:
		return "tap"
	case EventText:
		return "text"
	}
	return "unknown"
}

// Commands understood by the dispatcher.
const (
	CommandStart = "start"
	CommandStop  = "stop"
)

// Event is one incoming unit addressed to a conversation.
type Event struct {
	Kind    EventKind
	Command string
	// Payload is the opaque data of a tapped button.
	Payload string
	Text    string
}

// Command builds a command event.
func Command(name string) Event { return Event{Kind: EventCommand, Command: name} }

// Tap builds a button-tap event.
func Tap(payload string) Event { return Event{Kind: EventTap, Payload: payload} }

// Text builds a free-text event.
func Text(text string) Event { return Event{Kind: EventText, Text: text} }

// InputKind tells the transport how the user answers a reply.
type InputKind int

const (
	// InputTap renders choices as buttons attached to the message.
	InputTap InputKind = iota
	// InputText renders choices as a reply keyboard that sends plain text.
	InputText
)

// Choice is a selectable option attached to a reply.
type Choice struct {
	Label   string
	Payload string
}

// Reply is an outbound message.
type Reply struct {
	Text    string
	Choices []Choice
	Input   InputKind
	// PerRow limits buttons per row; zero means one per row.
	PerRow int
	// Dismiss asks the transport to remove a previously shown reply keyboard.
	Dismiss bool
}

// Responder sends replies back to the conversation.
type Responder interface {
	Reply(ctx context.Context, r Reply) error
}

// ResponderFunc adapts a function to Responder.
type ResponderFunc func(ctx context.Context, r Reply) error

// Reply calls f.
func (f ResponderFunc) Reply(ctx context.Context, r Reply) error { return f(ctx, r) }

// Provider supplies categories and questions.
type Provider interface {
	Categories(ctx context.Context) ([]Category, error)
	Questions(ctx context.Context, sel Selections, count int) ([]Question, error)
}
