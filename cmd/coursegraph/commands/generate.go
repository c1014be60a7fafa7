package commands

import (
	"context"
	"coursegraph/internal/graph"
	"coursegraph/internal/scrapers/banner"
	"fmt"
)

type generateArgs struct {
	Term        string
	Levels      []string
	Instructors []string
	Subjects    []string
	Course      string
}

func newGenerateArgs(args, levels, instructors, subjects, courses []string) (generateArgs, error) {
	if len(args) != 1 {
		return generateArgs{}, usageErrorf("expected exactly one term, got %d arguments", len(args))
	}
	if len(courses) > 1 {
		return generateArgs{}, usageErrorf("--course may only be given once")
	}

	out := generateArgs{
		Term:        args[0],
		Levels:      levels,
		Instructors: instructors,
		Subjects:    subjects,
	}
	if len(courses) == 1 {
		out.Course = courses[0]
	}
	return out, nil
}

func resolveAll(form banner.Form, names []string, resolve func(banner.Form, string) (string, error)) ([]string, error) {
	codes := make([]string, 0, len(names))
	for _, name := range names {
		code, err := resolve(form, name)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// buildQuery resolves every human readable name of the arguments into the
// codes the search expects.
func buildQuery(ctx context.Context, scraper banner.Scraper, args generateArgs) (banner.SearchQuery, error) {
	termForm, err := scraper.TermForm(ctx)
	if err != nil {
		return banner.SearchQuery{}, err
	}
	termCode, err := banner.TermCode(termForm, args.Term)
	if err != nil {
		return banner.SearchQuery{}, err
	}

	searchForm, err := scraper.SearchForm(ctx, termCode)
	if err != nil {
		return banner.SearchQuery{}, err
	}

	q := banner.SearchQuery{
		Term:   termCode,
		Course: args.Course,
	}
	q.Levels, err = resolveAll(searchForm, args.Levels, banner.LevelCode)
	if err != nil {
		return banner.SearchQuery{}, err
	}
	q.Subjects, err = resolveAll(searchForm, args.Subjects, banner.SubjectCode)
	if err != nil {
		return banner.SearchQuery{}, err
	}
	q.Instructors, err = resolveAll(searchForm, args.Instructors, banner.InstructorCode)
	if err != nil {
		return banner.SearchQuery{}, err
	}
	return q, nil
}

// generate searches for the courses matching args and writes their
// prerequisite graph to the sink, returning the number of courses written.
func generate(ctx context.Context, scraper banner.Scraper, sink graph.Sink, args generateArgs) (int, error) {
	q, err := buildQuery(ctx, scraper, args)
	if err != nil {
		return 0, err
	}
	courses, err := scraper.Search(ctx, q)
	if err != nil {
		return 0, err
	}

	err = sink.WriteLines(graph.Render(courses))
	if err != nil {
		return 0, fmt.Errorf("write graph: %w", err)
	}
	return len(courses), nil
}
