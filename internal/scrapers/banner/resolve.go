package banner

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// labels scoring below this against the requested name are not suggested
const suggestion_threshold = 0.8

// Resolve returns the value of the option under `key` whose label is exactly
// `label`. ok is false when there is no such option, or when `key` is missing
// or is not a select.
//
// If several options share a label, the one latest in the document wins.
func (f Form) Resolve(key, label string) (code string, ok bool) {
	field, exists := f.params[key]
	if !exists || field.Kind != FIELD_OPTIONS {
		return "", false
	}
	inverse := make(map[string]string, len(field.options))
	for _, o := range field.options {
		inverse[o.Label] = o.Value
	}
	code, ok = inverse[label]
	return code, ok
}

// HasOption reports whether the select under `key` has an option with this exact value.
func (f Form) HasOption(key, value string) bool {
	field, exists := f.params[key]
	if !exists || field.Kind != FIELD_OPTIONS {
		return false
	}
	for _, o := range field.options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Lookup accepts either an option value or an option label and returns the
// option value. Values take precedence over labels.
func (f Form) Lookup(key, name string) (string, error) {
	if f.HasOption(key, name) {
		return name, nil
	}
	return f.lookupLabel(key, name)
}

func (f Form) lookupLabel(key, name string) (string, error) {
	code, ok := f.Resolve(key, name)
	if !ok {
		return "", &ResolutionError{
			Field:      key,
			Name:       name,
			Suggestion: f.suggest(key, name),
		}
	}
	return code, nil
}

// suggest returns the label most similar to `name`, or "" if nothing is close.
func (f Form) suggest(key, name string) string {
	field, exists := f.params[key]
	if !exists {
		return ""
	}

	target := strings.ToLower(name)
	best := ""
	var bestScore float64
	for _, o := range field.options {
		score := matchr.JaroWinkler(target, strings.ToLower(o.Label), false)
		if score > bestScore {
			bestScore = score
			best = o.Label
		}
	}
	if bestScore < suggestion_threshold {
		return ""
	}
	return best
}

// TermCode resolves a term name (ex. "Fall 2021 Semester") using the term selection form.
func TermCode(termForm Form, name string) (string, error) {
	return termForm.lookupLabel(PARAM_TERM, name)
}

// InstructorCode resolves an instructor's display name using the search form.
func InstructorCode(searchForm Form, name string) (string, error) {
	return searchForm.lookupLabel(PARAM_INSTRUCTOR, name)
}

// LevelCode accepts a level code (ex. "UG") or its label using the search form.
func LevelCode(searchForm Form, name string) (string, error) {
	return searchForm.Lookup(PARAM_LEVEL, name)
}

// SubjectCode accepts a subject code (ex. "CS") or its label using the search form.
func SubjectCode(searchForm Form, name string) (string, error) {
	return searchForm.Lookup(PARAM_SUBJECT, name)
}
