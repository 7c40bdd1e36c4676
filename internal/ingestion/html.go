package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockTags are elements that end a line when HTML is flattened to text, so
// headers and list items stay on their own lines for section extraction.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "tr": true, "table": true,
}

// StripHTML reduces pasted HTML (a profile page, an exported document) to
// line-structured plain text. Script, style and navigation chrome are
// removed; list items come out as bullet lines.
func StripHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, nav, footer, header, .sidebar, .ad").Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var b strings.Builder
	flatten(root, &b)
	return b.String(), nil
}

func flatten(sel *goquery.Selection, b *strings.Builder) {
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		if goquery.NodeName(node) == "#text" {
			b.WriteString(node.Text())
			return
		}

		tag := goquery.NodeName(node)
		if tag == "li" {
			b.WriteString("\n- ")
			flatten(node, b)
			return
		}

		if blockTags[tag] {
			b.WriteString("\n")
		}
		flatten(node, b)
		if blockTags[tag] {
			b.WriteString("\n")
		}
	})
}
