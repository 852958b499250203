package embedded

import (
	_ "embed"
)

// Prompt templates, rendered with text/template by internal/prompt
//
//go:embed data/prompts/love_letter_system.tmpl
var LoveLetterSystemTmpl []byte

//go:embed data/prompts/love_letter_user.tmpl
var LoveLetterUserTmpl []byte

//go:embed data/prompts/date_plan_system.tmpl
var DatePlanSystemTmpl []byte

//go:embed data/prompts/date_plan_user.tmpl
var DatePlanUserTmpl []byte
