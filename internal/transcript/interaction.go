package transcript

import (
	"time"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// Speaker identifies who authored a chat message.
type Speaker string

const (
	Human     Speaker = "human"
	Assistant Speaker = "assistant"
)

// Message is a single turn in a chat transcript.
type Message struct {
	Speaker Speaker `json:"speaker" yaml:"speaker"`
	Text    string  `json:"text" yaml:"text"`
}

// ContextFile describes where a context message's text came from.
type ContextFile struct {
	FileName string `json:"fileName" yaml:"fileName"`
	RepoName string `json:"repoName,omitempty" yaml:"repoName,omitempty"`
	Revision string `json:"revision,omitempty" yaml:"revision,omitempty"`
}

// ContextMessage supplies background code or text to the model ahead of the
// primary prompt. File is nil for messages not tied to a file (e.g. "Ok.").
type ContextMessage struct {
	Message `yaml:",inline"`
	File    *ContextFile `json:"file,omitempty" yaml:"file,omitempty"`
}

// InteractionMessage is a message with its human-facing rendering and, for
// assistant turns, the prefix the completion must continue from.
type InteractionMessage struct {
	Speaker     Speaker `json:"speaker" yaml:"speaker"`
	Text        string  `json:"text" yaml:"text"`
	DisplayText string  `json:"displayText,omitempty" yaml:"displayText,omitempty"`
	Prefix      string  `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// Interaction is one human request and the seeded assistant answer, together
// with the context messages sent ahead of them.
type Interaction struct {
	ID               string             `json:"id" yaml:"id"`
	Source           string             `json:"source" yaml:"source"`
	Timestamp        time.Time          `json:"timestamp" yaml:"timestamp"`
	HumanMessage     InteractionMessage `json:"humanMessage" yaml:"humanMessage"`
	AssistantMessage InteractionMessage `json:"assistantMessage" yaml:"assistantMessage"`
	ContextMessages  []ContextMessage   `json:"contextMessages" yaml:"contextMessages"`
}

// InteractionArgs are the inputs of NewInteraction.
type InteractionArgs struct {
	Text            string
	DisplayText     string
	Source          string
	AssistantPrefix string
	AssistantText   string
	ContextMessages []ContextMessage
}

// NewInteraction builds an Interaction from a rendered prompt.
func NewInteraction(args InteractionArgs) *Interaction {
	contextMessages := make([]ContextMessage, len(args.ContextMessages))
	copy(contextMessages, args.ContextMessages)

	return &Interaction{
		ID:        uuid.NewString(),
		Source:    args.Source,
		Timestamp: time.Now().UTC(),
		HumanMessage: InteractionMessage{
			Speaker:     Human,
			Text:        args.Text,
			DisplayText: args.DisplayText,
		},
		AssistantMessage: InteractionMessage{
			Speaker:     Assistant,
			Text:        args.AssistantText,
			DisplayText: args.AssistantText,
			Prefix:      args.AssistantPrefix,
		},
		ContextMessages: contextMessages,
	}
}

// ToChat flattens the interaction into the message order sent to the model:
// context first, then the request, then the seeded answer.
func (i *Interaction) ToChat() []Message {
	out := make([]Message, 0, len(i.ContextMessages)+2)
	for _, cm := range i.ContextMessages {
		out = append(out, cm.Message)
	}
	out = append(out, Message{Speaker: Human, Text: i.HumanMessage.Text})
	if i.AssistantMessage.Text != "" {
		out = append(out, Message{Speaker: Assistant, Text: i.AssistantMessage.Text})
	}
	return out
}

// ToLLMMessages converts ToChat into langchaingo message contents.
func (i *Interaction) ToLLMMessages() []llms.MessageContent {
	chat := i.ToChat()
	out := make([]llms.MessageContent, 0, len(chat))
	for _, m := range chat {
		out = append(out, llms.TextParts(m.Speaker.chatMessageType(), m.Text))
	}
	return out
}

func (s Speaker) chatMessageType() schema.ChatMessageType {
	if s == Assistant {
		return schema.ChatMessageTypeAI
	}
	return schema.ChatMessageTypeHuman
}
