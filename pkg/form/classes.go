package form

import (
	"maps"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Classes is the CSS vocabulary the renderer emits. The defaults target
// Bootstrap.
type Classes struct {
	Group        string `yaml:"group" json:"group" env:"GROUP"`
	Label        string `yaml:"label" json:"label" env:"LABEL"`
	Control      string `yaml:"control" json:"control" env:"CONTROL"`
	Select       string `yaml:"select" json:"select" env:"SELECT"`
	Invalid      string `yaml:"invalid" json:"invalid" env:"INVALID"`
	Feedback     string `yaml:"feedback" json:"feedback" env:"FEEDBACK"`
	CheckWrapper string `yaml:"check_wrapper" json:"check_wrapper" env:"CHECK_WRAPPER"`
	CheckInput   string `yaml:"check_input" json:"check_input" env:"CHECK_INPUT"`
	CheckLabel   string `yaml:"check_label" json:"check_label" env:"CHECK_LABEL"`
	ErrorAlert   string `yaml:"error_alert" json:"error_alert" env:"ERROR_ALERT"`
	ErrorAlertID string `yaml:"error_alert_id" json:"error_alert_id" env:"ERROR_ALERT_ID"`
	SuccessAlert string `yaml:"success_alert" json:"success_alert" env:"SUCCESS_ALERT"`
	Messages     string `yaml:"messages" json:"messages" env:"MESSAGES"`
	Button       string `yaml:"button" json:"button" env:"BUTTON"`
	Primary      string `yaml:"primary" json:"primary" env:"PRIMARY"`
}

// DefaultClasses returns the Bootstrap class set.
func DefaultClasses() Classes {
	return Classes{
		Group:        "form-group",
		Label:        "strong",
		Control:      "form-control",
		Select:       "form-select",
		Invalid:      "is-invalid",
		Feedback:     "invalid-feedback",
		CheckWrapper: "form-check",
		CheckInput:   "form-check-input",
		CheckLabel:   "form-check-label",
		ErrorAlert:   "alert alert-danger",
		ErrorAlertID: "error-messages",
		SuccessAlert: "alert alert-success",
		Messages:     "messages",
		Button:       "btn",
		Primary:      "btn-primary",
	}
}

// Merge returns c with every non-empty value of override applied.
func (c Classes) Merge(override Classes) Classes {
	pick := func(base, candidate string) string {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
		return base
	}
	return Classes{
		Group:        pick(c.Group, override.Group),
		Label:        pick(c.Label, override.Label),
		Control:      pick(c.Control, override.Control),
		Select:       pick(c.Select, override.Select),
		Invalid:      pick(c.Invalid, override.Invalid),
		Feedback:     pick(c.Feedback, override.Feedback),
		CheckWrapper: pick(c.CheckWrapper, override.CheckWrapper),
		CheckInput:   pick(c.CheckInput, override.CheckInput),
		CheckLabel:   pick(c.CheckLabel, override.CheckLabel),
		ErrorAlert:   pick(c.ErrorAlert, override.ErrorAlert),
		ErrorAlertID: pick(c.ErrorAlertID, override.ErrorAlertID),
		SuccessAlert: pick(c.SuccessAlert, override.SuccessAlert),
		Messages:     pick(c.Messages, override.Messages),
		Button:       pick(c.Button, override.Button),
		Primary:      pick(c.Primary, override.Primary),
	}
}

// ThemeTokenPrefix namespaces the manifest tokens that override classes,
// e.g. "forms.class.control".
const ThemeTokenPrefix = "forms.class."

// ClassesFromTokens builds an override set from theme tokens.
func ClassesFromTokens(tokens map[string]string) Classes {
	get := func(key string) string {
		return tokens[ThemeTokenPrefix+key]
	}
	return Classes{
		Group:        get("group"),
		Label:        get("label"),
		Control:      get("control"),
		Select:       get("select"),
		Invalid:      get("invalid"),
		Feedback:     get("feedback"),
		CheckWrapper: get("check_wrapper"),
		CheckInput:   get("check_input"),
		CheckLabel:   get("check_label"),
		ErrorAlert:   get("error_alert"),
		ErrorAlertID: get("error_alert_id"),
		SuccessAlert: get("success_alert"),
		Messages:     get("messages"),
		Button:       get("button"),
		Primary:      get("primary"),
	}
}

// SelectionTokens merges the manifest tokens of a theme selection with the
// tokens of its selected variant.
func SelectionTokens(selection *theme.Selection) map[string]string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	tokens := maps.Clone(selection.Manifest.Tokens)
	if tokens == nil {
		tokens = make(map[string]string)
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		maps.Copy(tokens, variant.Tokens)
	}
	return tokens
}
