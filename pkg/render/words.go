package render

import (
	"strings"

	"github.com/arnolddental/pagegen/models"
)

// PlainText concatenates the readable text of every leaf in document order,
// one line per leaf.
func PlainText(doc *models.Document) string {
	if doc == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(nodes []models.Node)
	walk = func(nodes []models.Node) {
		for _, n := range nodes {
			if n.IsText() {
				sb.WriteString(n.Text)
				sb.WriteString("\n")
				continue
			}
			walk(n.Children)
		}
	}
	walk(doc.Nodes)
	return sb.String()
}

// WordCount counts whitespace-separated words across the whole document.
// The indexability engine uses this as its content-depth signal.
func WordCount(doc *models.Document) int {
	return len(strings.Fields(PlainText(doc)))
}
