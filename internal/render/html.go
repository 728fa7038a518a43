package render

import (
	"html"
	"strings"

	xhtml "golang.org/x/net/html"
)

// blockTags start a new line when opened or closed.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "li": true, "tr": true, "pre": true, "hr": true, "title": true,
}

// PlainText reduces an HTML document (typically a proxy or server error
// page) to readable text wrapped at width. Script and style content is
// dropped. Input that contains no markup is returned trimmed.
func PlainText(raw string, width int) string {
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "<") {
		return wrapText(strings.TrimSpace(html.UnescapeString(raw)), width)
	}

	tokenizer := xhtml.NewTokenizer(strings.NewReader(raw))
	var sb strings.Builder
	skip := 0

	newline := func() {
		s := sb.String()
		if s != "" && !strings.HasSuffix(s, "\n") {
			sb.WriteString("\n")
		}
	}

	for {
		tt := tokenizer.Next()
		switch tt {
		case xhtml.ErrorToken:
			return wrapText(strings.TrimSpace(sb.String()), width)

		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			tag := string(name)
			if tag == "script" || tag == "style" {
				if tt == xhtml.StartTagToken {
					skip++
				}
				continue
			}
			if blockTags[tag] {
				newline()
			}

		case xhtml.EndTagToken:
			name, _ := tokenizer.TagName()
			tag := string(name)
			if tag == "script" || tag == "style" {
				if skip > 0 {
					skip--
				}
				continue
			}
			if blockTags[tag] {
				newline()
			}

		case xhtml.TextToken:
			if skip > 0 {
				continue
			}
			text := strings.Join(strings.Fields(string(tokenizer.Text())), " ")
			if text == "" {
				continue
			}
			s := sb.String()
			if s != "" && !strings.HasSuffix(s, "\n") {
				sb.WriteString(" ")
			}
			sb.WriteString(text)
		}
	}
}

// wrapText performs simple word wrapping to the given width.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var result strings.Builder
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}
		lineLen := 0
		for i, word := range words {
			wlen := len(word)
			if i > 0 && lineLen+1+wlen > width {
				result.WriteString("\n")
				lineLen = 0
			} else if i > 0 {
				result.WriteString(" ")
				lineLen++
			}
			result.WriteString(word)
			lineLen += wlen
		}
		result.WriteString("\n")
	}
	return strings.TrimRight(result.String(), "\n")
}
