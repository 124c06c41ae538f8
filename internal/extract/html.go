package extract

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// FromHTML extracts the text content of the <body> element, falling back to
// the whole document when no body is present. Runs of whitespace collapse to
// single spaces.
func FromHTML(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyStream
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	root := doc
	if body := findElement(doc, "body"); body != nil {
		root = body
	}

	var sb strings.Builder
	collectText(root, &sb)
	return strings.Join(strings.Fields(sb.String()), " "), nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, tag); found != nil {
			return found
		}
	}
	return nil
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteString(" ")
		return
	}
	// Script and style bodies are not document text.
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, sb)
	}
}
