package banner

import (
	"coursegraph/pkg/htmlutil"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const page_listing = "listing"

type listingHeader struct {
	// position in document order amongst headers and cells
	position int
	code     string
	title    string
}

type listingCell struct {
	position      int
	prerequisites []string
}

// ParseListing parses a class search results page into courses sorted by code.
//
// Every `th.ddtitle` header is paired with the `td.dddefault` cell holding
// nothing but links to its prerequisites. Prerequisites that are not listed
// themselves are added as placeholders (see Course.IsPlaceholder).
func ParseListing(html string) ([]Course, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ParseError{Page: page_listing, Err: err}
	}

	var headers []listingHeader
	var cells []listingCell
	var headerErr error

	doc.Find("th.ddtitle, td.dddefault").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if s.Is("th") {
			code, title, err := splitCourseTitle(htmlutil.NormalizeText(s.Text()))
			if err != nil {
				headerErr = err
				return false
			}
			headers = append(headers, listingHeader{position: i, code: code, title: title})
			return true
		}
		if isPrerequisiteCell(s) {
			cells = append(cells, listingCell{position: i, prerequisites: prerequisiteCodes(s)})
		}
		return true
	})
	if headerErr != nil {
		return nil, headerErr
	}

	// no results, other layout cells on the page are irrelevant
	if len(headers) == 0 {
		return []Course{}, nil
	}

	err = checkPairing(headers, cells)
	if err != nil {
		return nil, err
	}

	courses := CourseMap{}
	for i, h := range headers {
		courses.add(Course{
			Code:          h.code,
			Title:         h.title,
			Prerequisites: cells[i].prerequisites,
		})
	}
	return courses.Sorted(), nil
}

// splitCourseTitle splits "<subject> - <title> - <code>".
func splitCourseTitle(text string) (code, title string, err error) {
	parts := strings.Split(text, " - ")
	if len(parts) != 3 {
		return "", "", parseError(page_listing, ErrMalformedTitle, "'%s' has %d parts, expected 3", text, len(parts))
	}
	code = strings.TrimSpace(parts[2])
	if code == "" {
		return "", "", parseError(page_listing, ErrMalformedTitle, "'%s' has no course code", text)
	}
	return code, strings.TrimSpace(parts[1]), nil
}

const ascii_whitespace = " \t\r\n\f"

// isPrerequisiteCell is true for cells holding nothing but links. A non-breaking
// space counts as text, meeting time tables fill their empty cells with it.
func isPrerequisiteCell(s *goquery.Selection) bool {
	if s.Children().Not("a").Length() > 0 {
		return false
	}
	return strings.Trim(htmlutil.GetDirectText(s.Get(0)), ascii_whitespace) == ""
}

func prerequisiteCodes(cell *goquery.Selection) []string {
	codes := []string{}
	for _, a := range htmlutil.GetAnchors(nil, cell.Find("a")) {
		if a.Name == "" {
			continue
		}
		codes = append(codes, a.Name)
	}
	slices.Sort(codes)
	return slices.Compact(codes)
}

// checkPairing makes sure header i can be paired with cell i: there are as
// many cells as headers and every cell sits between its header and the next.
func checkPairing(headers []listingHeader, cells []listingCell) error {
	if len(headers) != len(cells) {
		return parseError(
			page_listing, ErrUnpairedListing,
			"%d course headers but %d prerequisite cells", len(headers), len(cells),
		)
	}
	for i, h := range headers {
		if cells[i].position < h.position {
			return parseError(page_listing, ErrUnpairedListing, "prerequisite cell found before '%s'", h.code)
		}
		if i+1 < len(headers) && cells[i].position > headers[i+1].position {
			return parseError(page_listing, ErrUnpairedListing, "no prerequisite cell for '%s'", h.code)
		}
	}
	return nil
}

// add inserts a listed course. A placeholder for the same code is replaced,
// but an already listed course is kept as is. Placeholders are created for
// the prerequisites of the course that ends up stored.
func (m CourseMap) add(course Course) {
	existing, exists := m[course.Code]
	if exists && !existing.IsPlaceholder() {
		return
	}
	m[course.Code] = course
	for _, code := range course.Prerequisites {
		_, exists := m[code]
		if !exists {
			m[code] = Course{Code: code, Prerequisites: []string{}}
		}
	}
}
