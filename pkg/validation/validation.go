package validation

import (
	"fmt"
	"strings"
)

// Level indicates which validation stage produced the result.
type Level string

const (
	LevelSchema      Level = "schema"
	LevelFeasibility Level = "feasibility"
	LevelSpatial     Level = "spatial"
)

// Severity indicates how critical a validation result is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rule identifies the check that produced a result.
type Rule string

// Status lines framing Messages.
const (
	StatusValid   = "Inputs valid. City generating..."
	StatusInvalid = "Inputs invalid."
)

// Result is a single validation finding.
type Result struct {
	Level       Level    `json:"level"`
	Severity    Severity `json:"severity"`
	Rule        Rule     `json:"rule,omitempty"`
	Message     string   `json:"message"`
	SpecPath    string   `json:"spec_path,omitempty"`
	ActualValue any      `json:"actual_value,omitempty"`
	Expected    string   `json:"expected,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Report is the complete validation output.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []Result `json:"errors"`
	Warnings []Result `json:"warnings"`
	Info     []Result `json:"info"`
	Summary  string   `json:"summary"`
}

// NewReport creates an empty valid report.
func NewReport() *Report {
	r := &Report{
		Valid:    true,
		Errors:   []Result{},
		Warnings: []Result{},
		Info:     []Result{},
	}
	r.updateSummary()
	return r
}

// AddError adds an error result and marks the report invalid.
func (r *Report) AddError(result Result) {
	result.Severity = SeverityError
	r.Errors = append(r.Errors, result)
	r.Valid = false
	r.updateSummary()
}

// AddWarning adds a warning result.
func (r *Report) AddWarning(result Result) {
	result.Severity = SeverityWarning
	r.Warnings = append(r.Warnings, result)
	r.updateSummary()
}

// AddInfo adds an informational result.
func (r *Report) AddInfo(result Result) {
	result.Severity = SeverityInfo
	r.Info = append(r.Info, result)
	r.updateSummary()
}

// Merge combines another report into this one.
func (r *Report) Merge(other *Report) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Info = append(r.Info, other.Info...)
	if !other.Valid {
		r.Valid = false
	}
	r.updateSummary()
}

// Messages returns the human-facing status lines: the confirmation line
// when valid, or the invalid marker followed by every error message in
// the order the checks ran.
func (r *Report) Messages() []string {
	if r.Valid {
		return []string{StatusValid}
	}
	msgs := make([]string, 0, len(r.Errors)+1)
	msgs = append(msgs, StatusInvalid)
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

// Rules returns the identifiers of every failed check, in order.
func (r *Report) Rules() []Rule {
	rules := make([]Rule, 0, len(r.Errors))
	for _, e := range r.Errors {
		rules = append(rules, e.Rule)
	}
	return rules
}

// HasRule reports whether any error or warning carries the given rule.
func (r *Report) HasRule(rule Rule) bool {
	for _, e := range r.Errors {
		if e.Rule == rule {
			return true
		}
	}
	for _, w := range r.Warnings {
		if w.Rule == rule {
			return true
		}
	}
	return false
}

// Err returns nil for a valid report, otherwise a *ConfigurationError.
func (r *Report) Err() error {
	if r.Valid {
		return nil
	}
	return &ConfigurationError{Rules: r.Rules(), Messages: r.Messages()[1:]}
}

func (r *Report) updateSummary() {
	r.Summary = fmt.Sprintf("%d errors, %d warnings, %d info",
		len(r.Errors), len(r.Warnings), len(r.Info))
}

// ConfigurationError reports a CitySpec that failed validation.
// Generation must not run on a spec that produced one.
type ConfigurationError struct {
	Rules    []Rule
	Messages []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Messages) == 0 {
		return "invalid city spec"
	}
	return "invalid city spec: " + strings.Join(e.Messages, "; ")
}
