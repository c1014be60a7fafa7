package banner

import (
	"context"
	"coursegraph/internal/components/telemetry"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	pages    map[string]string
	err      error
	requests []Request
}

func (f *fakeFetcher) Fetch(ctx context.Context, req Request) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	page, ok := f.pages[req.Endpoint]
	if !ok {
		return "", &NetworkError{Method: req.Method.String(), Endpoint: req.Endpoint, Status: 404}
	}
	return page, nil
}

func TestSearchQueryParamsDefaults(t *testing.T) {
	params := SearchQuery{Term: "202210"}.Params()

	expected := Params{
		{PARAM_DAY, "dummy"},
		{PARAM_TERM, "202210"},
		{PARAM_SUBJECT, "dummy"},
		{PARAM_ATTRIBUTE, "dummy"},
		{PARAM_SCHEDULE, "dummy"},
		{PARAM_CAMPUS, "dummy"},
		{PARAM_INSTRUCTION, "dummy"},
		{PARAM_PART_OF_TERM, "dummy"},
		{PARAM_LEVEL, "dummy"},
		{PARAM_INSTRUCTOR, "dummy"},
		{PARAM_SEAT, "dummy"},
		{PARAM_MESSAGE_CODE, "You can not select All in Subject and All in Attribute type."},
		{PARAM_CRN, ""},
		{PARAM_TITLE, ""},
		{PARAM_ATTRIBUTE, "%"},
		{PARAM_SCHEDULE, "%"},
		{PARAM_INSTRUCTION, "%"},
		{PARAM_FROM_CREDITS, ""},
		{PARAM_TO_CREDITS, ""},
		{PARAM_CAMPUS, "%"},
		{PARAM_PART_OF_TERM, "%"},
		{PARAM_BEGIN_HOUR, "0"},
		{PARAM_BEGIN_MINUTE, "0"},
		{PARAM_BEGIN_MERIDIEM, "a"},
		{PARAM_END_HOUR, "0"},
		{PARAM_END_MINUTE, "0"},
		{PARAM_END_MERIDIEM, "a"},
		{PARAM_LEVEL, "%"},
		{PARAM_SUBJECT, "%"},
		{PARAM_SUBJECT, "%"},
		{PARAM_INSTRUCTOR, "%"},
		{PARAM_COURSE, ""},
	}
	if diff := cmp.Diff(expected, params); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchQueryParamsFilters(t *testing.T) {
	params := SearchQuery{
		Term:        "202210",
		Subjects:    []string{"CS", "DS"},
		Levels:      []string{"UG"},
		Instructors: []string{"1001"},
		Days:        []string{"m", "w"},
		Course:      "25",
		BeginHour:   "9",
	}.Params()

	require.Equal(t, []string{"dummy", "CS", "DS"}, params.Get(PARAM_SUBJECT))
	require.Equal(t, []string{"dummy", "UG"}, params.Get(PARAM_LEVEL))
	require.Equal(t, []string{"dummy", "1001"}, params.Get(PARAM_INSTRUCTOR))
	require.Equal(t, []string{"dummy", "m", "w"}, params.Get(PARAM_DAY))
	require.Equal(t, []string{"dummy"}, params.Get(PARAM_SEAT))
	require.Equal(t, []string{"dummy", "%"}, params.Get(PARAM_CAMPUS))
	require.Equal(t, []string{"25"}, params.Get(PARAM_COURSE))
	require.Equal(t, []string{"9"}, params.Get(PARAM_BEGIN_HOUR))
	require.Equal(t, PARAM_COURSE, params[len(params)-1].Key)
}

func TestParamsEncode(t *testing.T) {
	var params Params
	params.Add(PARAM_SUBJECT, "dummy", "%")
	params.Add(PARAM_TITLE, "Data & Structures")
	require.Equal(t, "sel_subj=dummy&sel_subj=%25&sel_title=Data+%26+Structures", params.Encode())
	require.Equal(t, "", Params{}.Encode())
}

func TestScraperFlow(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		endpoint_term_form:   termFormHtml,
		endpoint_search_form: searchFormHtml,
		endpoint_search:      listingHtml,
	}}
	rec := telemetry.NewRecorder()
	scraper := NewScraper(fetcher, rec)
	ctx := context.Background()

	termForm, err := scraper.TermForm(ctx)
	require.NoError(t, err)
	termCode, err := TermCode(termForm, "Fall 2021 Semester")
	require.NoError(t, err)

	searchForm, err := scraper.SearchForm(ctx, termCode)
	require.NoError(t, err)
	instructor, err := InstructorCode(searchForm, "Razzaq, Leena")
	require.NoError(t, err)

	courses, err := scraper.Search(ctx, SearchQuery{
		Term:        termCode,
		Instructors: []string{instructor},
	})
	require.NoError(t, err)
	require.Len(t, courses, 3)

	require.Len(t, fetcher.requests, 3)
	require.Equal(t, METHOD_GET, fetcher.requests[0].Method)
	require.Equal(t, METHOD_POST, fetcher.requests[1].Method)
	require.Equal(t, []string{"202210"}, fetcher.requests[1].Params.Get(PARAM_TERM))
	require.Equal(t, []string{"dummy", "1001"}, fetcher.requests[2].Params.Get(PARAM_INSTRUCTOR))

	require.Empty(t, rec.Broken)
	require.Equal(t, int64(3), rec.Counts["banner_scraper: scraper.search"])
}

func TestScraperErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("network", func(t *testing.T) {
		fetcher := &fakeFetcher{err: &NetworkError{Method: "GET", Endpoint: endpoint_term_form, Err: context.DeadlineExceeded}}
		_, err := NewScraper(fetcher, telemetry.NewRecorder()).TermForm(ctx)
		var networkErr *NetworkError
		require.True(t, errors.As(err, &networkErr))
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("unparsable form", func(t *testing.T) {
		fetcher := &fakeFetcher{pages: map[string]string{
			endpoint_search_form: "<html><body>down for maintenance</body></html>",
		}}
		rec := telemetry.NewRecorder()
		_, err := NewScraper(fetcher, rec).SearchForm(ctx, "202210")
		require.ErrorIs(t, err, ErrNoForm)
		require.Equal(t, []string{"banner_scraper: scraper.search-form"}, rec.BrokenIds())
	})

	t.Run("unparsable listing", func(t *testing.T) {
		fetcher := &fakeFetcher{pages: map[string]string{
			endpoint_search: renderListing(listingEntry{title: "not a course"}),
		}}
		rec := telemetry.NewRecorder()
		_, err := NewScraper(fetcher, rec).Search(ctx, SearchQuery{Term: "202210"})
		require.ErrorIs(t, err, ErrMalformedTitle)
		require.Equal(t, []string{"banner_scraper: scraper.search"}, rec.BrokenIds())
	})

	t.Run("no term", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		_, err := NewScraper(fetcher, telemetry.NewRecorder()).Search(ctx, SearchQuery{})
		require.Error(t, err)
		require.Empty(t, fetcher.requests)
	})
}
