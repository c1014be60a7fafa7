package banner

import (
	"coursegraph/pkg/htmlutil"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const page_form = "form"

// ParseForm parses the single form inside a banner page's content container.
//
// Hidden inputs become literal fields and selects become option fields, both
// keyed by their name. A select replaces a hidden input of the same name since
// banner pairs every multi-select with a hidden "dummy" value.
func ParseForm(html string) (Form, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Form{}, &ParseError{Page: page_form, Err: err}
	}

	title := htmlutil.NormalizeText(doc.Find("title").First().Text())

	form := doc.Find("div.pagebodydiv form").First()
	if form.Length() == 0 {
		return Form{}, parseError(page_form, ErrNoForm, "")
	}

	action, ok := form.Attr("action")
	if !ok {
		return Form{}, parseError(page_form, ErrMissingAttr, "form has no action")
	}
	rawMethod, ok := form.Attr("method")
	if !ok {
		return Form{}, parseError(page_form, ErrMissingAttr, "form has no method")
	}
	method, err := parseMethod(rawMethod)
	if err != nil {
		return Form{}, err
	}

	params := map[string]Field{}

	var inputErr error
	form.Find("input[type=hidden]").EachWithBreak(func(_ int, input *goquery.Selection) bool {
		name, ok := input.Attr("name")
		if !ok {
			inputErr = parseError(page_form, ErrMissingAttr, "hidden input has no name")
			return false
		}
		value, ok := input.Attr("value")
		if !ok {
			inputErr = parseError(page_form, ErrMissingAttr, "hidden input '%s' has no value", name)
			return false
		}
		params[name] = LiteralField(value)
		return true
	})
	if inputErr != nil {
		return Form{}, inputErr
	}

	var selectErr error
	form.Find("select").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		name, ok := sel.Attr("name")
		if !ok {
			selectErr = parseError(page_form, ErrMissingAttr, "select has no name")
			return false
		}
		options, err := parseOptions(name, sel)
		if err != nil {
			selectErr = err
			return false
		}
		params[name] = OptionsField(options)
		return true
	})
	if selectErr != nil {
		return Form{}, selectErr
	}

	return NewForm(title, action, method, params), nil
}

func parseMethod(method string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "get":
		return METHOD_GET, nil
	case "post":
		return METHOD_POST, nil
	}
	return 0, parseError(page_form, ErrBadMethod, "'%s'", method)
}

func parseOptions(selectName string, sel *goquery.Selection) ([]Option, error) {
	var options []Option
	var err error
	sel.Find("option").EachWithBreak(func(_ int, opt *goquery.Selection) bool {
		value, ok := opt.Attr("value")
		if !ok {
			err = parseError(page_form, ErrMissingAttr, "option of select '%s' has no value", selectName)
			return false
		}
		options = append(options, Option{
			Value: value,
			Label: strings.TrimSpace(opt.Text()),
		})
		return true
	})
	return options, err
}
