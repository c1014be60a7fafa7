package banner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParseForm(t testing.TB, html string) Form {
	form, err := ParseForm(html)
	if err != nil {
		t.Fatal(err)
	}
	return form
}

func TestResolveIsInverse(t *testing.T) {
	for _, html := range []string{termFormHtml, searchFormHtml} {
		form := mustParseForm(t, html)
		for _, key := range form.Keys() {
			field, _ := form.Param(key)
			labels := field.OptionMap()
			for _, o := range field.Options() {
				code, ok := form.Resolve(key, o.Label)
				require.True(t, ok, "%s: %s", key, o.Label)
				require.Equal(t, o.Label, labels[code])
			}
		}
	}
}

func TestResolve(t *testing.T) {
	form := mustParseForm(t, searchFormHtml)

	table := []struct {
		key   string
		label string
		code  string
		ok    bool
	}{
		{key: PARAM_SUBJECT, label: "Computer Science", code: "CS", ok: true},
		{key: PARAM_LEVEL, label: "Undergraduate", code: "UG", ok: true},
		{key: PARAM_INSTRUCTOR, label: "Razzaq, Leena", code: "1001", ok: true},
		// duplicated label, the last option wins
		{key: PARAM_INSTRUCTOR, label: "Lerner, Benjamin", code: "1004", ok: true},
		// exact and case sensitive
		{key: PARAM_SUBJECT, label: "computer science", ok: false},
		{key: PARAM_SUBJECT, label: "Computer Science ", ok: false},
		{key: PARAM_INSTRUCTOR, label: "Nobody, Someone", ok: false},
		// literal field
		{key: PARAM_TERM, label: "202210", ok: false},
		// missing key
		{key: "sel_nothing", label: "Computer Science", ok: false},
	}

	for _, row := range table {
		code, ok := form.Resolve(row.key, row.label)
		require.Equal(t, row.ok, ok, "%s: %s", row.key, row.label)
		require.Equal(t, row.code, code, "%s: %s", row.key, row.label)
	}
}

func TestTermCode(t *testing.T) {
	form := mustParseForm(t, termFormHtml)

	code, err := TermCode(form, "Fall 2021 Semester")
	require.NoError(t, err)
	require.Equal(t, "202210", code)

	_, err = TermCode(form, "202210")
	var resolutionErr *ResolutionError
	require.True(t, errors.As(err, &resolutionErr))
	require.Equal(t, PARAM_TERM, resolutionErr.Field)
}

func TestInstructorCodeMiss(t *testing.T) {
	form := mustParseForm(t, searchFormHtml)

	_, err := InstructorCode(form, "Lerner, Benjamn")
	var resolutionErr *ResolutionError
	require.True(t, errors.As(err, &resolutionErr))
	require.Equal(t, "Lerner, Benjamn", resolutionErr.Name)
	require.Equal(t, "Lerner, Benjamin", resolutionErr.Suggestion)
	require.Equal(t, "invalid instructor 'Lerner, Benjamn' (did you mean 'Lerner, Benjamin'?)", err.Error())

	_, err = InstructorCode(form, "zzzzzzzzzzzz")
	require.True(t, errors.As(err, &resolutionErr))
	require.Equal(t, "", resolutionErr.Suggestion)
	require.Equal(t, "invalid instructor 'zzzzzzzzzzzz'", err.Error())
}

func TestLevelAndSubjectCode(t *testing.T) {
	form := mustParseForm(t, searchFormHtml)

	table := []struct {
		lookup func(Form, string) (string, error)
		name   string
		code   string
	}{
		{lookup: LevelCode, name: "UG", code: "UG"},
		{lookup: LevelCode, name: "Graduate", code: "GR"},
		{lookup: SubjectCode, name: "CS", code: "CS"},
		{lookup: SubjectCode, name: "Mathematics", code: "MATH"},
	}
	for _, row := range table {
		code, err := row.lookup(form, row.name)
		require.NoError(t, err)
		require.Equal(t, row.code, code)
	}

	_, err := SubjectCode(form, "Basket Weaving")
	var resolutionErr *ResolutionError
	require.True(t, errors.As(err, &resolutionErr))
	require.Equal(t, PARAM_SUBJECT, resolutionErr.Field)
}

func TestResolveWithoutForm(t *testing.T) {
	var form Form
	_, ok := form.Resolve(PARAM_INSTRUCTOR, "Razzaq, Leena")
	require.False(t, ok)

	_, err := InstructorCode(form, "Razzaq, Leena")
	require.Error(t, err)
}
