package banner

import (
	"context"
	"coursegraph/internal/components/assert"
	"coursegraph/internal/components/telemetry"
	"errors"
	"fmt"
)

const (
	endpoint_term_form   = "NEUCLSS.p_disp_dyn_sched"
	endpoint_search_form = "NEUCLSS.p_class_select"
	endpoint_search      = "NEUCLSS.p_class_search"

	// Wildcard matches everything in a selector.
	Wildcard = "%"
	// banner rejects a search unless every selector starts with this value
	dummy_value = "dummy"
	// required by the validation script of the search form
	message_code = "You can not select All in Subject and All in Attribute type."

	report_scraper_term_form   = "scraper.term-form"
	report_scraper_search_form = "scraper.search-form"
	report_scraper_search      = "scraper.search"
)

// SearchQuery holds the filters of a class search. Empty selectors match
// everything, empty text fields are not filtered on.
type SearchQuery struct {
	Term string

	Days               []string
	Subjects           []string
	Attributes         []string
	Schedules          []string
	Campuses           []string
	InstructionMethods []string
	PartsOfTerm        []string
	Levels             []string
	Instructors        []string
	Seats              []string

	CRN         string
	Course      string
	Title       string
	FromCredits string
	ToCredits   string

	BeginHour     string
	BeginMinute   string
	BeginMeridiem string
	EndHour       string
	EndMinute     string
	EndMeridiem   string
}

func orWildcard(values []string) []string {
	if len(values) == 0 {
		return []string{Wildcard}
	}
	return values
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Params returns the search parameters in the order the search form submits them.
func (q SearchQuery) Params() Params {
	var p Params
	p.Add(PARAM_DAY, dummy_value)
	p.Add(PARAM_TERM, q.Term)
	p.Add(PARAM_SUBJECT, dummy_value)
	p.Add(PARAM_ATTRIBUTE, dummy_value)
	p.Add(PARAM_SCHEDULE, dummy_value)
	p.Add(PARAM_CAMPUS, dummy_value)
	p.Add(PARAM_INSTRUCTION, dummy_value)
	p.Add(PARAM_PART_OF_TERM, dummy_value)
	p.Add(PARAM_LEVEL, dummy_value)
	p.Add(PARAM_INSTRUCTOR, dummy_value)
	p.Add(PARAM_SEAT, dummy_value)
	p.Add(PARAM_MESSAGE_CODE, message_code)

	p.Add(PARAM_CRN, q.CRN)
	p.Add(PARAM_TITLE, q.Title)
	p.Add(PARAM_ATTRIBUTE, orWildcard(q.Attributes)...)
	p.Add(PARAM_SCHEDULE, orWildcard(q.Schedules)...)
	p.Add(PARAM_INSTRUCTION, orWildcard(q.InstructionMethods)...)
	p.Add(PARAM_FROM_CREDITS, q.FromCredits)
	p.Add(PARAM_TO_CREDITS, q.ToCredits)
	p.Add(PARAM_CAMPUS, orWildcard(q.Campuses)...)
	p.Add(PARAM_PART_OF_TERM, orWildcard(q.PartsOfTerm)...)

	p.Add(PARAM_BEGIN_HOUR, orDefault(q.BeginHour, "0"))
	p.Add(PARAM_BEGIN_MINUTE, orDefault(q.BeginMinute, "0"))
	p.Add(PARAM_BEGIN_MERIDIEM, orDefault(q.BeginMeridiem, "a"))
	p.Add(PARAM_END_HOUR, orDefault(q.EndHour, "0"))
	p.Add(PARAM_END_MINUTE, orDefault(q.EndMinute, "0"))
	p.Add(PARAM_END_MERIDIEM, orDefault(q.EndMeridiem, "a"))

	// days and seats have no wildcard, leaving them out means no filter
	p.Add(PARAM_DAY, q.Days...)
	p.Add(PARAM_SEAT, q.Seats...)

	p.Add(PARAM_LEVEL, orWildcard(q.Levels)...)
	subjects := q.Subjects
	if len(subjects) == 0 {
		// the search form submits the wildcard twice when no subject is picked
		subjects = []string{Wildcard, Wildcard}
	}
	p.Add(PARAM_SUBJECT, subjects...)
	p.Add(PARAM_INSTRUCTOR, orWildcard(q.Instructors)...)
	p.Add(PARAM_COURSE, q.Course)
	return p
}

// Scraper drives the term form -> search form -> class search flow of a
// banner instance. Each method makes exactly one request.
type Scraper struct {
	fetcher Fetcher
	tel     telemetry.API
}

func NewScraper(fetcher Fetcher, tel telemetry.API) Scraper {
	assert.NotNil(fetcher, "fetcher")
	assert.NotNil(tel, "telemetry")

	return Scraper{
		fetcher: fetcher,
		tel:     telemetry.NewScopedAPI("banner_scraper", tel),
	}
}

// TermForm fetches the term selection form, its STU_TERM_IN select maps term codes to names.
func (s Scraper) TermForm(ctx context.Context) (Form, error) {
	s.tel.ReportDebug("fetch term form")

	html, err := s.fetcher.Fetch(ctx, Request{
		Method:   METHOD_GET,
		Endpoint: endpoint_term_form,
	})
	if err != nil {
		return Form{}, fmt.Errorf("fetch term form: %w", err)
	}
	form, err := ParseForm(html)
	if err != nil {
		s.tel.ReportBroken(report_scraper_term_form, err)
		return Form{}, fmt.Errorf("term form: %w", err)
	}
	return form, nil
}

// SearchForm fetches the empty class search form for a term, its selects
// hold the valid subjects, levels and instructors.
func (s Scraper) SearchForm(ctx context.Context, termCode string) (Form, error) {
	s.tel.ReportDebug("fetch search form", termCode)

	var params Params
	params.Add(PARAM_TERM, termCode)
	html, err := s.fetcher.Fetch(ctx, Request{
		Method:   METHOD_POST,
		Endpoint: endpoint_search_form,
		Params:   params,
	})
	if err != nil {
		return Form{}, fmt.Errorf("fetch search form: %w", err)
	}
	form, err := ParseForm(html)
	if err != nil {
		s.tel.ReportBroken(report_scraper_search_form, err, termCode)
		return Form{}, fmt.Errorf("search form: %w", err)
	}
	return form, nil
}

// Search submits a class search and parses the listing it returns.
func (s Scraper) Search(ctx context.Context, q SearchQuery) ([]Course, error) {
	if q.Term == "" {
		return nil, errors.New("search: query has no term")
	}
	s.tel.ReportDebug("search", q.Term)

	html, err := s.fetcher.Fetch(ctx, Request{
		Method:   METHOD_POST,
		Endpoint: endpoint_search,
		Params:   q.Params(),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch search results: %w", err)
	}
	courses, err := ParseListing(html)
	if err != nil {
		s.tel.ReportBroken(report_scraper_search, err, q.Term)
		return nil, fmt.Errorf("search results: %w", err)
	}

	s.tel.ReportCount(report_scraper_search, int64(len(courses)))
	return courses, nil
}
