// Package promptlib implements the ea-prompts MCP server: a prompt library
// demonstrating the MCP Prompts capability. Five built-in prompt templates are
// served over the prompts API, and users can keep their own templates in a
// custom library managed through tools.
package promptlib

import (
	"fmt"
	"strings"
)

// Argument describes one placeholder a prompt template accepts.
type Argument struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Prompt is a stored prompt template. Placeholders use {name} syntax.
type Prompt struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Template    string     `json:"template"`
	Arguments   []Argument `json:"arguments"`
	Builtin     bool       `json:"builtin"`
	CreatedAt   string     `json:"created_at,omitempty"`
}

// Render substitutes argument values into the template. Required arguments
// must be present; optional arguments fall back to their default.
func (p Prompt) Render(args map[string]string, defaults map[string]string) (string, error) {
	result := p.Template
	for _, arg := range p.Arguments {
		value, ok := args[arg.Name]
		if !ok || value == "" {
			if def, hasDefault := defaults[arg.Name]; hasDefault {
				value = def
			} else if arg.Required {
				return "", fmt.Errorf("missing required argument: %s", arg.Name)
			}
		}
		result = strings.ReplaceAll(result, "{"+arg.Name+"}", value)
	}
	return result, nil
}

func codeArg(description string) []Argument {
	return []Argument{{Name: "code", Description: description, Required: true}}
}

// Builtins returns the five built-in prompts in registration order. Built-in
// prompts cannot be overwritten or removed.
func Builtins() []Prompt {
	return []Prompt{
		{
			Name:        "code-review",
			Description: "Review code for issues, bugs, and improvements",
			Template: `Review the following code for:
1. Potential bugs or errors
2. Security vulnerabilities
3. Performance issues
4. Code style and readability
5. Suggested improvements

Code to review:
{code}

Provide specific, actionable feedback.`,
			Arguments: codeArg("The code to review"),
			Builtin:   true,
		},
		{
			Name:        "explain-code",
			Description: "Explain what code does in plain English",
			Template: `Explain the following code in plain English, suitable for a beginner:

1. What does this code do overall?
2. Break down each major section
3. Explain any complex or unusual patterns
4. Mention any potential issues or edge cases

Code to explain:
{code}`,
			Arguments: codeArg("The code to explain"),
			Builtin:   true,
		},
		{
			Name:        "write-tests",
			Description: "Generate test cases for code",
			Template: `Generate comprehensive test cases for the following code:

1. Unit tests for each function/method
2. Edge cases and boundary conditions
3. Error handling scenarios
4. Integration points (if applicable)

Use appropriate testing framework based on the language.

Code to test:
{code}`,
			Arguments: codeArg("The code to test"),
			Builtin:   true,
		},
		{
			Name:        "refactor",
			Description: "Suggest refactoring improvements",
			Template: `Analyze this code for refactoring opportunities:

1. DRY (Don't Repeat Yourself) violations
2. Functions that are too long
3. Poor naming
4. Missing abstractions
5. Simplification opportunities

Provide the refactored version with explanations.

Code to refactor:
{code}`,
			Arguments: codeArg("The code to refactor"),
			Builtin:   true,
		},
		{
			Name:        "debug",
			Description: "Help debug an error or issue",
			Template: `Help debug this issue:

Error/Problem:
{error}

Relevant code:
{code}

Steps to reproduce (if known):
{steps}

Analyze and suggest:
1. Likely cause of the issue
2. How to fix it
3. How to prevent similar issues`,
			Arguments: []Argument{
				{Name: "error", Description: "The error message or problem description", Required: true},
				{Name: "code", Description: "The relevant code", Required: true},
				{Name: "steps", Description: "Steps to reproduce (optional)", Required: false},
			},
			Builtin: true,
		},
	}
}

// IsBuiltin reports whether name belongs to a built-in prompt.
func IsBuiltin(name string) bool {
	for _, p := range Builtins() {
		if p.Name == name {
			return true
		}
	}
	return false
}
