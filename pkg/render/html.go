package render

import (
	"bytes"
	"strings"

	"github.com/russross/blackfriday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Telegram accepts only a small HTML subset; everything else is flattened to
// its text content.
var allowedTags = map[string]bool{
	"b": true, "strong": true,
	"i": true, "em": true,
	"u": true,
	"s": true, "strike": true, "del": true,
	"code": true, "pre": true,
	"a": true,
}

var blockTags = map[string]bool{
	"p": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "hr": true,
}

// ToHTML renders model markdown into Telegram-safe HTML.
func ToHTML(markdown string) string {
	rendered := blackfriday.MarkdownCommon([]byte(markdown))

	nodes, err := html.ParseFragment(bytes.NewReader(rendered), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return html.EscapeString(markdown)
	}

	var sb strings.Builder
	for _, n := range nodes {
		writeNode(&sb, n)
	}
	return strings.TrimSpace(sb.String())
}

func writeNode(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(html.EscapeString(n.Data))
	case html.ElementNode:
		tag := n.Data
		if allowedTags[tag] {
			sb.WriteString("<" + tag)
			if tag == "a" {
				for _, attr := range n.Attr {
					if attr.Key == "href" {
						sb.WriteString(` href="` + html.EscapeString(attr.Val) + `"`)
					}
				}
			}
			sb.WriteString(">")
			writeChildren(sb, n)
			sb.WriteString("</" + tag + ">")
			return
		}

		writeChildren(sb, n)
		if blockTags[tag] {
			sb.WriteString("\n")
		}
	default:
		writeChildren(sb, n)
	}
}

func writeChildren(sb *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNode(sb, c)
	}
}
