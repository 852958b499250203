package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Conceptual-Machines/ldr-sync-api/internal/random"
)

// DefaultRecipients are the nicknames a letter is addressed to
var DefaultRecipients = []string{"Rishi", "Chokri"}

// DefaultSender is the persona the letters are written as
const DefaultSender = "Veer"

// PromptPair is the system + user instruction sent to the model
type PromptPair struct {
	System string
	User   string
}

// LetterPrompt is a letter PromptPair plus the nickname it was addressed to
type LetterPrompt struct {
	PromptPair
	Recipient string
}

// Builder builds prompts for the love letter and date planner policies.
// It holds no mutable state; the random source is only read.
type Builder struct {
	sender     string
	recipients []string
	rng        random.Source
	templates  *Templates
}

// NewPromptBuilder creates a new prompt builder over the embedded templates
func NewPromptBuilder(sender string, recipients []string, rng random.Source) (*Builder, error) {
	templates, err := NewPromptLoader().Load()
	if err != nil {
		return nil, err
	}
	if sender == "" {
		sender = DefaultSender
	}
	if len(recipients) == 0 {
		recipients = DefaultRecipients
	}
	if rng == nil {
		rng = random.Global
	}
	return &Builder{
		sender:     sender,
		recipients: append([]string(nil), recipients...),
		rng:        rng,
		templates:  templates,
	}, nil
}

// Letter builds the love letter prompt for a mood, picking the recipient uniformly
func (b *Builder) Letter(mood string) (LetterPrompt, error) {
	recipient := b.recipients[b.rng.IntN(len(b.recipients))]
	data := struct {
		Sender    string
		Recipient string
		Mood      string
	}{b.sender, recipient, mood}

	system, err := render(b.templates.LetterSystem, data)
	if err != nil {
		return LetterPrompt{}, err
	}
	user, err := render(b.templates.LetterUser, data)
	if err != nil {
		return LetterPrompt{}, err
	}
	return LetterPrompt{
		PromptPair: PromptPair{System: system, User: user},
		Recipient:  recipient,
	}, nil
}

// DatePlan builds the date planner prompt. Tags are passed through verbatim.
func (b *Builder) DatePlan(duration, vibe string) (PromptPair, error) {
	data := struct {
		Duration string
		Vibe     string
	}{duration, vibe}

	system, err := render(b.templates.DateSystem, data)
	if err != nil {
		return PromptPair{}, err
	}
	user, err := render(b.templates.DateUser, data)
	if err != nil {
		return PromptPair{}, err
	}
	return PromptPair{System: system, User: user}, nil
}

func render(tmpl *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", tmpl.Name(), err)
	}
	return sb.String(), nil
}
