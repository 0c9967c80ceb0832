package page

import (
	"strings"

	"golang.org/x/net/html"
)

// readableText reduces a raw HTML document to the readable text a user sees:
// scripts, styles and other non-content elements are dropped, block elements
// become line breaks, and runs of whitespace collapse to single spaces.
func readableText(rawHTML string) (string, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	collectText(doc, &builder)

	return normalizeWhitespace(builder.String()), nil
}

func collectText(n *html.Node, builder *strings.Builder) {
	if n.Type == html.CommentNode {
		return
	}
	if n.Type == html.ElementNode {
		tag := strings.ToLower(n.Data)
		if isSkippedElement(tag) {
			return
		}
		if isBlockElement(tag) || tag == "br" {
			builder.WriteString("\n")
		}
	}
	if n.Type == html.TextNode {
		text := strings.TrimSpace(n.Data)
		if text != "" {
			builder.WriteString(text)
			builder.WriteString(" ")
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, builder)
	}
}

// isSkippedElement returns true for elements whose text is never content.
func isSkippedElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "iframe", "embed", "object", "svg", "head":
		return true
	}
	return false
}

// isBlockElement returns true for elements that break the text flow.
func isBlockElement(tagName string) bool {
	switch tagName {
	case "div", "p", "section", "article", "header", "footer", "nav", "main",
		"aside", "h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li",
		"table", "tr", "td", "th", "form", "fieldset", "blockquote", "pre":
		return true
	}
	return false
}

// normalizeWhitespace collapses space runs within lines and blank-line runs
// between them.
func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
