package banner

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	_ "embed"
)

//go:embed testdata/term_form.html
var termFormHtml string

//go:embed testdata/search_form.html
var searchFormHtml string

func TestParseTermForm(t *testing.T) {
	form, err := ParseForm(termFormHtml)
	require.NoError(t, err)

	require.Equal(t, "Dynamic Schedule", form.Title)
	require.Equal(t, "/udcprod8/NEUCLSS.p_class_select", form.Action)
	require.Equal(t, METHOD_POST, form.Method)
	require.Equal(t, []string{PARAM_TERM}, form.Keys())

	field, ok := form.Param(PARAM_TERM)
	require.True(t, ok)
	require.Equal(t, FIELD_OPTIONS, field.Kind)

	expected := []Option{
		{Value: "", Label: "None"},
		{Value: "202210", Label: "Fall 2021 Semester"},
		{Value: "202215", Label: "Fall 2021 Law Quarter"},
		{Value: "202130", Label: "Spring 2021 Semester"},
		{Value: "202140", Label: "Summer 1 2021 Semester (View only)"},
	}
	if diff := cmp.Diff(expected, field.Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSearchForm(t *testing.T) {
	form, err := ParseForm(searchFormHtml)
	require.NoError(t, err)

	require.Equal(t, "Class Schedule Search", form.Title)
	require.Equal(t, METHOD_POST, form.Method)
	require.Equal(t, []string{
		PARAM_TERM,
		PARAM_MESSAGE_CODE,
		PARAM_DAY,
		PARAM_INSTRUCTOR,
		PARAM_LEVEL,
		PARAM_SUBJECT,
	}, form.Keys())

	term, ok := form.Param(PARAM_TERM)
	require.True(t, ok)
	value, ok := term.Literal()
	require.True(t, ok)
	require.Equal(t, "202210", value)

	// the select replaces the hidden dummy of the same name
	subjects, ok := form.Param(PARAM_SUBJECT)
	require.True(t, ok)
	require.Equal(t, FIELD_OPTIONS, subjects.Kind)
	_, ok = subjects.Literal()
	require.False(t, ok)
	require.Equal(t, map[string]string{
		"ACCT": "Accounting",
		"CS":   "Computer Science",
		"DS":   "Data Science",
		"MATH": "Mathematics",
	}, subjects.OptionMap())

	day, ok := form.Param(PARAM_DAY)
	require.True(t, ok)
	require.Equal(t, FIELD_LITERAL, day.Kind)
}

func TestParseFormErrors(t *testing.T) {
	table := []struct {
		name     string
		html     string
		expected error
	}{
		{
			name:     "no container",
			html:     `<html><body><form action="x" method="post"></form></body></html>`,
			expected: ErrNoForm,
		},
		{
			name:     "no form",
			html:     `<html><body><div class="pagebodydiv"><p>maintenance</p></div></body></html>`,
			expected: ErrNoForm,
		},
		{
			name:     "no action",
			html:     `<div class="pagebodydiv"><form method="post"></form></div>`,
			expected: ErrMissingAttr,
		},
		{
			name:     "bad method",
			html:     `<div class="pagebodydiv"><form action="x" method="put"></form></div>`,
			expected: ErrBadMethod,
		},
		{
			name:     "hidden without value",
			html:     `<div class="pagebodydiv"><form action="x" method="get"><input type="hidden" name="a"></form></div>`,
			expected: ErrMissingAttr,
		},
		{
			name:     "hidden without name",
			html:     `<div class="pagebodydiv"><form action="x" method="get"><input type="hidden" value="a"></form></div>`,
			expected: ErrMissingAttr,
		},
		{
			name: "option without value",
			html: `<div class="pagebodydiv"><form action="x" method="get">
				<select name="s"><option value="1">one</option><option>two</option></select>
			</form></div>`,
			expected: ErrMissingAttr,
		},
	}

	for _, row := range table {
		t.Run(row.name, func(t *testing.T) {
			_, err := ParseForm(row.html)
			require.Error(t, err)
			require.ErrorIs(t, err, row.expected)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			require.Equal(t, "form", parseErr.Page)
		})
	}
}

func TestParseFormIsCopy(t *testing.T) {
	form, err := ParseForm(searchFormHtml)
	require.NoError(t, err)

	field, _ := form.Param(PARAM_SUBJECT)
	options := field.Options()
	options[0].Label = "changed"
	optionMap := field.OptionMap()
	optionMap["CS"] = "changed"

	field, _ = form.Param(PARAM_SUBJECT)
	require.Equal(t, "Accounting", field.Options()[0].Label)
	require.Equal(t, "Computer Science", field.OptionMap()["CS"])
}

func TestOptionsFieldDuplicateValues(t *testing.T) {
	field := OptionsField([]Option{
		{Value: "a", Label: "first"},
		{Value: "b", Label: "second"},
		{Value: "a", Label: "third"},
	})
	require.Equal(t, []Option{
		{Value: "a", Label: "third"},
		{Value: "b", Label: "second"},
	}, field.Options())
}
