// Package textclean implements component A: turning a vacancy's raw,
// possibly malformed HTML description into deterministic plain text.
package textclean

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// openCloseTags have a distinct open and close token in the parsed tree, so
// each occurrence (not just one) emits a newline — this is what produces a
// blank-line paragraph break rather than a single line break.
var openCloseTags = map[string]bool{"p": true, "li": true}

var blockTags = map[string]bool{
	"div": true, "ul": true, "ol": true, "tr": true,
	"table": true, "section": true, "article": true,
}

var (
	horizontalWhitespace = regexp.MustCompile(`[ \t\f\x{00A0}]+`)
	threeOrMoreNewlines  = regexp.MustCompile(`\n{3,}`)
)

// Clean converts rawHTML into plain text per §4.1: p/li emit a newline
// both before and after their content, br emits a single newline, block tags (div, ul, ol, tr, table,
// section, article) emit a newline on close, horizontal whitespace runs
// collapse to a single space, each line is trimmed, and three-or-more
// consecutive newlines collapse to exactly two. Deterministic, no I/O.
//
// HTML parsing goes through goquery, whose underlying x/net/html parser
// already decodes entities while tokenizing; we walk the resulting node
// tree ourselves rather than goquery's selector API, since the newline
// placement rules are about tag open/close boundaries, not element
// selection.
func Clean(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return normalize(rawHTML)
	}

	var b strings.Builder
	for _, n := range doc.Nodes {
		walk(n, &b)
	}

	return normalize(b.String())
}

func walk(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		if n.Data == "br" || openCloseTags[n.Data] {
			b.WriteString("\n")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, b)
	}

	if n.Type == html.ElementNode && (openCloseTags[n.Data] || blockTags[n.Data]) {
		b.WriteString("\n")
	}
}

func normalize(s string) string {
	s = horizontalWhitespace.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")

	s = threeOrMoreNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
