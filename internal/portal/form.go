package portal

import (
	"errors"
	"io"

	"golang.org/x/net/html"
)

// errFieldMissing reports a form page without the hidden total-file-size
// input. This is a reportable condition, not a transport failure: the
// caller gets a message, not a crash.
var errFieldMissing = errors.New("totfilesize input not found in form page")

// totalFileSizeField walks the form page HTML and returns the value of the
// input element with id "totfilesize".
func totalFileSizeField(body io.Reader) (string, error) {
	doc, err := html.Parse(body)
	if err != nil {
		return "", err
	}

	var value string
	var found bool
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found {
			return
		}
		if n.Type == html.ElementNode && n.Data == "input" {
			var id, val string
			for _, a := range n.Attr {
				switch a.Key {
				case "id":
					id = a.Val
				case "value":
					val = a.Val
				}
			}
			if id == "totfilesize" {
				value, found = val, true
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if !found {
		return "", errFieldMissing
	}
	return value, nil
}
