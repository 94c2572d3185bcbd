package article

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	linkPolicyOnce sync.Once
	linkPolicy     *bluemonday.Policy
)

// Card is the rendered preview built from the current form values.
type Card struct {
	Title       string
	Description string
	ImageURL    string
	CTA         string
	LinkOutURL  string
}

// Preview reads the live field values. Edits made after a successful submit
// show up immediately.
func (f *Form) Preview() Card {
	return Card{
		Title:       f.values[FieldTitle],
		Description: f.values[FieldDescription],
		ImageURL:    strings.TrimSpace(f.values[FieldImageURL]),
		CTA:         f.values[FieldCTAText],
		LinkOutURL:  strings.TrimSpace(f.values[FieldLinkOutURL]),
	}
}

// Markdown renders the card as a markdown document. Text is escaped so it
// shows literally.
func (c Card) Markdown() string {
	var b strings.Builder
	if title := strings.TrimSpace(c.Title); title != "" {
		fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(title))
	}
	if c.ImageURL != "" {
		fmt.Fprintf(&b, "![preview image](<%s>)\n\n", escapeDestination(c.ImageURL))
	}
	if desc := strings.TrimSpace(c.Description); desc != "" {
		fmt.Fprintf(&b, "%s\n\n", escapeMarkdown(desc))
	}
	fmt.Fprintf(&b, "**[%s](<%s>)**\n", escapeMarkdown(strings.ToUpper(c.CTA)), escapeDestination(c.LinkOutURL))
	return b.String()
}

// SafeLink reports whether raw is an absolute http(s) URL fit to hand to the
// system opener.
func SafeLink(raw string) (string, bool) {
	link := strings.TrimSpace(raw)
	if link == "" {
		return "", false
	}
	out := linkSanitizer().Sanitize(`<a href="` + html.EscapeString(link) + `">link</a>`)
	if !strings.Contains(out, "href=") {
		return "", false
	}
	return link, true
}

func linkSanitizer() *bluemonday.Policy {
	linkPolicyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.RequireParseableURLs(true)
		p.AllowURLSchemes("http", "https")
		p.AllowAttrs("href").OnElements("a")
		linkPolicy = p
	})
	return linkPolicy
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"#", `\#`,
	"<", `\<`,
	">", `\>`,
	"&", `\&`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

var destinationEscaper = strings.NewReplacer(
	`\`, `\\`,
	"<", `\<`,
	">", `\>`,
	"\n", "%0A",
)

// escapeDestination prepares a URL for an angle-bracket link destination,
// which allows spaces and parentheses.
func escapeDestination(s string) string {
	return destinationEscaper.Replace(s)
}
