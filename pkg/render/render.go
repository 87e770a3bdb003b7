// Package render fills page templates: token substitution over header
// strings and rich-text document trees. All functions are pure; input
// documents are never mutated.
package render

import (
	"regexp"
	"sort"
	"strings"

	"github.com/arnolddental/pagegen/models"
)

// Tokens recognized by the pipeline. Unknown tokens in a template are left
// verbatim, so this list is documentation more than enforcement.
var KnownTokens = []string{
	"service", "suburb", "city",
	"reviewsCount", "reviewsRating",
	"membershipUrl", "contactUrl", "bookingUrl",
}

// Replacements maps token names to their per-pair values. Values are
// coerced to strings by the caller.
type Replacements map[string]string

type matcher struct {
	re     *regexp.Regexp
	values map[string]string
}

// compileMatcher builds one alternation pattern over every token, matching
// {{ token }} with any internal whitespace, case-insensitively. A single
// pass means a replacement value that itself contains {{ token }} stays
// literal instead of being re-substituted.
func compileMatcher(repl Replacements) *matcher {
	if len(repl) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(repl))
	values := make(map[string]string, len(repl))
	for t, v := range repl {
		tokens = append(tokens, regexp.QuoteMeta(t))
		values[strings.ToLower(t)] = v
	}
	sort.Strings(tokens)

	pattern := `(?i)\{\{\s*(` + strings.Join(tokens, "|") + `)\s*\}\}`
	return &matcher{re: regexp.MustCompile(pattern), values: values}
}

func (m *matcher) replace(s string) string {
	if m == nil {
		return s
	}
	return m.re.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.ToLower(strings.TrimSpace(strings.Trim(match, "{}")))
		if v, ok := m.values[name]; ok {
			return v
		}
		return match
	})
}

// RenderString substitutes tokens in a flat template string.
func RenderString(s string, repl Replacements) string {
	return compileMatcher(repl).replace(s)
}

// Render returns a copy of doc with tokens substituted in every text leaf.
// The output tree has exactly the same node types, ordering and nesting as
// the input; only leaf text values change.
func Render(doc *models.Document, repl Replacements) *models.Document {
	if doc == nil {
		return nil
	}
	m := compileMatcher(repl)
	out := &models.Document{Nodes: renderNodes(doc.Nodes, m)}
	return out
}

func renderNodes(nodes []models.Node, m *matcher) []models.Node {
	if nodes == nil {
		return nil
	}
	out := make([]models.Node, len(nodes))
	for i, n := range nodes {
		copied := models.Node{Type: n.Type}
		if n.IsText() {
			copied.Text = m.replace(n.Text)
			if len(n.Marks) > 0 {
				copied.Marks = append([]string(nil), n.Marks...)
			}
		} else {
			copied.Text = n.Text
			if len(n.Marks) > 0 {
				copied.Marks = append([]string(nil), n.Marks...)
			}
			copied.Children = renderNodes(n.Children, m)
		}
		out[i] = copied
	}
	return out
}
