// Package chatfmt renders upstream content into WhatsApp-style chat
// markdown: *bold*, _italic_ and backtick monospace.
package chatfmt

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// HTMLToText converts an HTML fragment to chat text. Bold and italic
// elements become chat markdown, pre/code blocks become monospace,
// remaining tags are stripped and entities unescaped.
func HTMLToText(input string) string {
	if input == "" {
		return ""
	}

	node, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return strings.TrimSpace(input)
	}

	var builder strings.Builder
	render(node, &builder, false)

	text := excessNewlines.ReplaceAllString(builder.String(), "\n\n")
	return strings.TrimSpace(text)
}

func render(node *html.Node, builder *strings.Builder, inPre bool) {
	if node.Type == html.TextNode {
		builder.WriteString(node.Data)
		return
	}

	var prefix, suffix string
	if node.Type == html.ElementNode {
		switch node.Data {
		case "strong", "b":
			prefix, suffix = "*", "*"
		case "em", "i":
			prefix, suffix = "_", "_"
		case "code":
			// the fence already covers code nested in a pre block
			if !inPre {
				prefix, suffix = "`", "`"
			}
		case "pre":
			prefix, suffix = "```\n", "\n```"
			inPre = true
		case "br", "p", "li", "div":
			builder.WriteRune('\n')
		}
	}

	builder.WriteString(prefix)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		render(child, builder, inPre)
	}
	builder.WriteString(suffix)

	if node.Type == html.ElementNode && (node.Data == "p" || node.Data == "li") {
		builder.WriteRune('\n')
	}
}

// MonthYear formats a unix timestamp as e.g. "Feb 2010".
func MonthYear(sec int64) string {
	return time.Unix(sec, 0).UTC().Format("Jan 2006")
}

// Date formats a unix timestamp as e.g. "2024-07-01".
func Date(sec int64) string {
	return time.Unix(sec, 0).UTC().Format("2006-01-02")
}

// DateTime formats a unix timestamp as e.g. "2024-07-01 17:35 UTC".
func DateTime(sec int64) string {
	return time.Unix(sec, 0).UTC().Format("2006-01-02 15:04 MST")
}

// Truncate shortens s to at most n runes, appending an ellipsis when
// anything was cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
