// Package run maps file extensions to compile/run command templates and
// executes them through the process collaborator.
package run

import (
	"strings"

	"tedit/internal/config"
	"tedit/internal/errors"
)

// Rule is a run strategy for one file extension. Compile, when present, is
// executed first and must produce the {exe} artifact consumed by Run.
type Rule struct {
	Compile []string
	Run     []string
}

// NeedsCompile reports whether the rule has a separate compile step.
func (r Rule) NeedsCompile() bool {
	return len(r.Compile) > 0
}

// Expand substitutes the {file} and {exe} placeholders into a template.
func Expand(template []string, file, exe string) []string {
	argv := make([]string, len(template))
	for i, tok := range template {
		tok = strings.ReplaceAll(tok, "{file}", file)
		tok = strings.ReplaceAll(tok, "{exe}", exe)
		argv[i] = tok
	}
	return argv
}

// Defaults returns the built-in rule table. Extensions are matched exactly.
func Defaults() map[string]Rule {
	compiled := func(compiler string) Rule {
		return Rule{
			Compile: []string{compiler, "{file}", "-o", "{exe}"},
			Run:     []string{"{exe}"},
		}
	}
	return map[string]Rule{
		".py":  {Run: []string{"python3", "{file}"}},
		".go":  {Run: []string{"go", "run", "{file}"}},
		".sh":  {Run: []string{"sh", "{file}"}},
		".c":   compiled("gcc"),
		".cpp": compiled("g++"),
		".cc":  compiled("g++"),
		".cxx": compiled("g++"),
		".rs":  compiled("rustc"),
	}
}

// Dispatcher resolves file extensions to run rules. It carries no hidden
// state: identical inputs always resolve identically.
type Dispatcher struct {
	rules map[string]Rule
}

// NewDispatcher builds a dispatcher from the defaults with config overrides
// applied on top. Adding a language is a config change, not a code change.
func NewDispatcher(overrides map[string]config.RunRuleConfig) *Dispatcher {
	rules := Defaults()
	for ext, rc := range overrides {
		rules[ext] = Rule{Compile: rc.Compile, Run: rc.Run}
	}
	return &Dispatcher{rules: rules}
}

// Resolve returns the rule for the given extension (including the dot).
func (d *Dispatcher) Resolve(ext string) (Rule, error) {
	rule, ok := d.rules[ext]
	if !ok || len(rule.Run) == 0 {
		return Rule{}, errors.NewCommandError("run not supported for", ext, errors.UnsupportedExtension, nil)
	}
	return rule, nil
}
