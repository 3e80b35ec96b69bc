package render

import (
	"regexp"
	"strings"
)

// A last-resort markdown subset used only when the real renderer errors.
// Headings, emphasis, links, images, code and paragraph breaks; enough to
// not abort a publish.

var (
	fbH3     = regexp.MustCompile(`(?m)^### (.*)$`)
	fbH2     = regexp.MustCompile(`(?m)^## (.*)$`)
	fbH1     = regexp.MustCompile(`(?m)^# (.*)$`)
	fbBold   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	fbItalic = regexp.MustCompile(`\*(.*?)\*`)
	fbImage  = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	fbLink   = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	fbBlock  = regexp.MustCompile("```([^`]+)```")
	fbCode   = regexp.MustCompile("`([^`]+)`")
)

func fallbackHTML(markdown string) string {
	html := markdown
	html = fbH3.ReplaceAllString(html, "<h3>$1</h3>")
	html = fbH2.ReplaceAllString(html, "<h2>$1</h2>")
	html = fbH1.ReplaceAllString(html, "<h1>$1</h1>")
	html = fbBold.ReplaceAllString(html, "<strong>$1</strong>")
	html = fbItalic.ReplaceAllString(html, "<em>$1</em>")
	html = fbImage.ReplaceAllString(html, `<img src="$2" alt="$1" />`)
	html = fbLink.ReplaceAllString(html, `<a href="$2">$1</a>`)
	html = fbBlock.ReplaceAllString(html, "<pre><code>$1</code></pre>")
	html = fbCode.ReplaceAllString(html, "<code>$1</code>")
	html = strings.ReplaceAll(html, "\n\n", "</p><p>")
	html = strings.ReplaceAll(html, "\n", "<br>")
	html = "<p>" + html + "</p>"
	return strings.ReplaceAll(html, "<p></p>", "")
}
