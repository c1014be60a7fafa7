// Package graph renders course prerequisites as a graphviz DOT digraph.
package graph

import (
	"coursegraph/internal/scrapers/banner"
	"fmt"
	"slices"
	"strings"
)

const (
	header = `digraph G {rankdir="LR";node [width=5, height=1];`
	footer = `}`
)

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// NodeId turns a course code into a DOT identifier, ex. "CS 2500" -> "CS_2500".
func NodeId(code string) string {
	return strings.ReplaceAll(code, " ", "_")
}

func nodeLine(course banner.Course) string {
	label := labelEscaper.Replace(course.Code) + `\n` + labelEscaper.Replace(course.Title)
	return fmt.Sprintf(`%s [ label="%s" ];`, NodeId(course.Code), label)
}

func edgeLine(from, to string) string {
	return fmt.Sprintf("%s -> %s;", NodeId(from), NodeId(to))
}

// Render returns the lines of a digraph with a node per course, in the given
// order, and an edge from every prerequisite to the course requiring it.
// Edges are sorted so their order does not depend on the order of courses.
func Render(courses []banner.Course) []string {
	lines := make([]string, 0, len(courses)+2)
	lines = append(lines, header)

	var edges []string
	for _, course := range courses {
		lines = append(lines, nodeLine(course))
		for _, prerequisite := range course.Prerequisites {
			edges = append(edges, edgeLine(prerequisite, course.Code))
		}
	}
	slices.Sort(edges)

	lines = append(lines, edges...)
	lines = append(lines, footer)
	return lines
}
