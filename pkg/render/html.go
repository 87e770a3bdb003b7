package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/arnolddental/pagegen/models"
)

// inlineMarks maps inline formatting elements to the marks carried by the
// text leaves they wrap. Inline elements do not become container nodes.
var inlineMarks = map[string]string{
	"strong": "bold",
	"b":      "bold",
	"em":     "italic",
	"i":      "italic",
	"u":      "underline",
}

// DocumentFromHTML converts a rich-text HTML fragment from the content
// source into the typed body tree. Block elements become container nodes
// keyed by tag name; text becomes leaf nodes; inline formatting elements
// collapse into marks on their text leaves.
func DocumentFromHTML(fragment string) (*models.Document, error) {
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, err
	}
	doc := &models.Document{}
	body := gq.Find("body")
	if body.Length() == 0 {
		return doc, nil
	}
	doc.Nodes = childNodes(body.Get(0), nil)
	return doc, nil
}

func childNodes(parent *html.Node, marks []string) []models.Node {
	var out []models.Node
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, convert(c, marks)...)
	}
	return out
}

func convert(n *html.Node, marks []string) []models.Node {
	switch n.Type {
	case html.TextNode:
		text := strings.Join(strings.Fields(n.Data), " ")
		if text == "" {
			return nil
		}
		leaf := models.Node{Type: models.NodeText, Text: text}
		if len(marks) > 0 {
			leaf.Marks = append([]string(nil), marks...)
		}
		return []models.Node{leaf}
	case html.ElementNode:
		if mark, ok := inlineMarks[n.Data]; ok {
			return childNodes(n, appendMark(marks, mark))
		}
		node := models.Node{Type: n.Data, Children: childNodes(n, marks)}
		return []models.Node{node}
	default:
		return nil
	}
}

func appendMark(marks []string, mark string) []string {
	for _, m := range marks {
		if m == mark {
			return marks
		}
	}
	out := make([]string, 0, len(marks)+1)
	out = append(out, marks...)
	return append(out, mark)
}
