package parser

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/himynameismarvin/budget-bop/internal/common"
)

// ParseHTML extracts the first table element from HTML markup. The first
// table row becomes the header row. HTML without a table element is a hard
// error; the caller must not proceed to mapping.
func ParseHTML(input string) (*Table, error) {
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return nil, common.NewUserError("could not parse HTML input", err)
	}

	tableNode := findFirst(doc, "table")
	if tableNode == nil {
		return nil, common.ErrNoTableFound
	}

	var records [][]string
	walk(tableNode, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			walk(n, func(c *html.Node) bool {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					cells = append(cells, strings.TrimSpace(textContent(c)))
					return false
				}
				return true
			})
			if !allEmpty(cells) {
				records = append(records, cells)
			}
			return false
		}
		return true
	})

	table := &Table{Headers: []string{}}
	if len(records) == 0 {
		return table, nil
	}

	table.Headers = buildHeaders(records)
	for _, cells := range records[1:] {
		row := make(map[string]string, len(table.Headers))
		for i, header := range table.Headers {
			if i < len(cells) {
				row[header] = cells[i]
			} else {
				row[header] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// findFirst returns the first element with the given tag in document order.
func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// walk visits nodes depth-first; fn returning false stops descent into that
// node's children.
func walk(n *html.Node, fn func(*html.Node) bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if fn(c) {
			walk(c, fn)
		}
	}
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}
