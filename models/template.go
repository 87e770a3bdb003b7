package models

// NodeText is the type tag carried by leaf text nodes.
const NodeText = "text"

// Node is one node of a rich-text body document. Container nodes carry a
// block type ("p", "h2", "ul", ...) and an ordered child list; leaf nodes
// carry Type == NodeText plus the raw string content and formatting marks.
type Node struct {
	Type     string   `json:"type" yaml:"type"`
	Text     string   `json:"text,omitempty" yaml:"text,omitempty"`
	Marks    []string `json:"marks,omitempty" yaml:"marks,omitempty"`
	Children []Node   `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsText reports whether the node is a leaf text node.
func (n Node) IsText() bool {
	return n.Type == NodeText
}

// Document is the body tree of a page template.
type Document struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
}

// NodeCount returns the total number of nodes in the document, leaves
// included.
func (d *Document) NodeCount() int {
	if d == nil {
		return 0
	}
	total := 0
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			total++
			walk(n.Children)
		}
	}
	walk(d.Nodes)
	return total
}

// Template is the single shared page template fetched from the content
// source. The three header strings and every text leaf of Body may contain
// {{ token }} placeholders.
type Template struct {
	TitleTemplate       string    `json:"titleTemplate" yaml:"titleTemplate"`
	DescriptionTemplate string    `json:"descriptionTemplate" yaml:"descriptionTemplate"`
	HeadingTemplate     string    `json:"headingTemplate" yaml:"headingTemplate"`
	Body                *Document `json:"body" yaml:"body"`
}

// TemplateFields is the wire shape of a template entry. The content source
// may deliver the body either as a pre-structured tree or as a rich-text
// HTML fragment; the catalog client converts the latter.
type TemplateFields struct {
	TitleTemplate       string    `json:"titleTemplate"`
	DescriptionTemplate string    `json:"descriptionTemplate"`
	HeadingTemplate     string    `json:"headingTemplate"`
	Body                *Document `json:"body,omitempty"`
	BodyHTML            string    `json:"bodyHtml,omitempty"`
}
