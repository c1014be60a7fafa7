package banner

import (
	"maps"
	"net/url"
	"slices"
	"strings"
)

// names of the banner form parameters the scraper knows about
const (
	PARAM_TERM           = "STU_TERM_IN"
	PARAM_DAY            = "sel_day"
	PARAM_SUBJECT        = "sel_subj"
	PARAM_ATTRIBUTE      = "sel_attr"
	PARAM_SCHEDULE       = "sel_schd"
	PARAM_CAMPUS         = "sel_camp"
	PARAM_INSTRUCTION    = "sel_insm"
	PARAM_PART_OF_TERM   = "sel_ptrm"
	PARAM_LEVEL          = "sel_levl"
	PARAM_INSTRUCTOR     = "sel_instr"
	PARAM_SEAT           = "sel_seat"
	PARAM_MESSAGE_CODE   = "p_msg_code"
	PARAM_CRN            = "sel_crn"
	PARAM_COURSE         = "sel_crse"
	PARAM_TITLE          = "sel_title"
	PARAM_FROM_CREDITS   = "sel_from_cred"
	PARAM_TO_CREDITS     = "sel_to_cred"
	PARAM_BEGIN_HOUR     = "begin_hh"
	PARAM_BEGIN_MINUTE   = "begin_mi"
	PARAM_BEGIN_MERIDIEM = "begin_ap"
	PARAM_END_HOUR       = "end_hh"
	PARAM_END_MINUTE     = "end_mi"
	PARAM_END_MERIDIEM   = "end_ap"
)

type descriptions map[string]string

func (d descriptions) describe(key string) string {
	desc, ok := d[key]
	if !ok {
		return key
	}
	return desc
}

var fieldDescriptions = descriptions{
	PARAM_TERM:       "term",
	PARAM_SUBJECT:    "subject",
	PARAM_LEVEL:      "level",
	PARAM_INSTRUCTOR: "instructor",
	PARAM_CAMPUS:     "campus",
	PARAM_ATTRIBUTE:  "attribute",
}

type Method int

const (
	METHOD_GET Method = iota
	METHOD_POST
)

func (m Method) String() string {
	switch m {
	case METHOD_GET:
		return "GET"
	case METHOD_POST:
		return "POST"
	}
	return "UNKNOWN"
}

type FieldKind int

const (
	// FIELD_LITERAL is the value of a hidden input.
	FIELD_LITERAL FieldKind = iota
	// FIELD_OPTIONS is the value -> label mapping of a select.
	FIELD_OPTIONS
)

type Option struct {
	Value string
	Label string
}

// Field is a single named form parameter, exactly one of the literal or the
// options is meaningful depending on Kind.
type Field struct {
	Kind    FieldKind
	literal string
	// options in document order, values are unique
	options []Option
}

func LiteralField(value string) Field {
	return Field{Kind: FIELD_LITERAL, literal: value}
}

// OptionsField builds a select field, a repeated value keeps its first
// position and takes the label of its last occurrence.
func OptionsField(options []Option) Field {
	deduped := make([]Option, 0, len(options))
	position := map[string]int{}
	for _, o := range options {
		idx, seen := position[o.Value]
		if seen {
			deduped[idx].Label = o.Label
			continue
		}
		position[o.Value] = len(deduped)
		deduped = append(deduped, o)
	}
	return Field{Kind: FIELD_OPTIONS, options: deduped}
}

// Literal returns the hidden value, ok is false if the field is a select.
func (f Field) Literal() (value string, ok bool) {
	return f.literal, f.Kind == FIELD_LITERAL
}

// Options returns a copy of the select's options in document order.
func (f Field) Options() []Option {
	return slices.Clone(f.options)
}

// OptionMap returns the select's options as a value -> label mapping.
func (f Field) OptionMap() map[string]string {
	out := make(map[string]string, len(f.options))
	for _, o := range f.options {
		out[o.Value] = o.Label
	}
	return out
}

// Form describes a parsed html form.
type Form struct {
	Title  string
	Action string
	Method Method
	params map[string]Field
}

func NewForm(title, action string, method Method, params map[string]Field) Form {
	return Form{
		Title:  title,
		Action: action,
		Method: method,
		params: maps.Clone(params),
	}
}

func (f Form) Param(key string) (Field, bool) {
	field, ok := f.params[key]
	return field, ok
}

// Keys returns the names of all parameters, sorted.
func (f Form) Keys() []string {
	keys := make([]string, 0, len(f.params))
	for k := range f.params {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Course is a single course and the codes of the courses it requires.
type Course struct {
	Code  string
	Title string
	// Prerequisites is sorted and contains no duplicates.
	Prerequisites []string
}

// IsPlaceholder is true for a course that was only seen as someone's prerequisite.
func (c Course) IsPlaceholder() bool {
	return c.Title == "" && len(c.Prerequisites) == 0
}

type CourseMap map[string]Course

// Sorted returns the courses ordered by code.
func (m CourseMap) Sorted() []Course {
	codes := make([]string, 0, len(m))
	for code := range m {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	out := make([]Course, len(codes))
	for i, code := range codes {
		out[i] = m[code]
	}
	return out
}

type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of form parameters, keys may repeat.
type Params []Param

func (p *Params) Add(key string, values ...string) {
	for _, v := range values {
		*p = append(*p, Param{Key: key, Value: v})
	}
}

// Get returns every value of `key` in order.
func (p Params) Get(key string) []string {
	var out []string
	for _, param := range p {
		if param.Key == key {
			out = append(out, param.Value)
		}
	}
	return out
}

// Encode renders the params as application/x-www-form-urlencoded, keeping their order.
func (p Params) Encode() string {
	var buf strings.Builder
	for i, param := range p {
		if i > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(url.QueryEscape(param.Key))
		buf.WriteByte('=')
		buf.WriteString(url.QueryEscape(param.Value))
	}
	return buf.String()
}
