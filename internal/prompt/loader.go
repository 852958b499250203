package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Conceptual-Machines/ldr-sync-api/pkg/embedded"
)

// Templates are the parsed prompt templates for both policies
type Templates struct {
	LetterSystem *template.Template
	LetterUser   *template.Template
	DateSystem   *template.Template
	DateUser     *template.Template
}

type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// Load parses every embedded prompt template
func (l *Loader) Load() (*Templates, error) {
	letterSystem, err := parse("love_letter_system", embedded.LoveLetterSystemTmpl)
	if err != nil {
		return nil, err
	}
	letterUser, err := parse("love_letter_user", embedded.LoveLetterUserTmpl)
	if err != nil {
		return nil, err
	}
	dateSystem, err := parse("date_plan_system", embedded.DatePlanSystemTmpl)
	if err != nil {
		return nil, err
	}
	dateUser, err := parse("date_plan_user", embedded.DatePlanUserTmpl)
	if err != nil {
		return nil, err
	}

	return &Templates{
		LetterSystem: letterSystem,
		LetterUser:   letterUser,
		DateSystem:   dateSystem,
		DateUser:     dateUser,
	}, nil
}

func parse(name string, src []byte) (*template.Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(strings.TrimSpace(string(src)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
	}
	return tmpl, nil
}
