package article

import (
	"strings"
	"testing"
)

func TestPreviewIsLive(t *testing.T) {
	f := NewForm()
	_ = f.UpdateField(FieldTitle, "First")
	_ = f.UpdateField(FieldDescription, "desc")
	f.Submit()

	_ = f.UpdateField(FieldTitle, "Second")
	if got := f.Preview().Title; got != "Second" {
		t.Fatalf("preview title = %q, want Second", got)
	}
}

func TestPreviewKeepsMarkupAsText(t *testing.T) {
	f := NewForm()
	_ = f.UpdateField(FieldTitle, "Use <br> tags")
	_ = f.UpdateField(FieldDescription, "<script>alert(1)</script>")
	_ = f.UpdateField(FieldImageURL, "https://img.test/a.png")
	_ = f.UpdateField(FieldLinkOutURL, "https://x.test/live")
	if !f.Submit() {
		t.Fatalf("submit rejected: %v", f.Errors())
	}

	card := f.Preview()
	if card.Title != "Use <br> tags" {
		t.Fatalf("title = %q", card.Title)
	}
	if card.Description != "<script>alert(1)</script>" {
		t.Fatalf("description = %q", card.Description)
	}

	md := card.Markdown()
	for _, want := range []string{`# Use \<br\> tags`, `\<script\>alert(1)\</script\>`} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "<br>") || strings.Contains(md, "<script>") {
		t.Fatalf("markup left unescaped:\n%s", md)
	}
}

func TestCardMarkdown(t *testing.T) {
	c := Card{Title: "A_b", Description: "desc", ImageURL: "https://img", CTA: "Read More", LinkOutURL: "https://out"}
	md := c.Markdown()
	for _, want := range []string{`# A\_b`, "![preview image](<https://img>)", "desc", "**[READ MORE](<https://out>)**"} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestCardMarkdownWrapsDestinations(t *testing.T) {
	c := Card{CTA: "Watch Live", ImageURL: "https://img.test/a (1).png", LinkOutURL: "https://x.test/a b"}
	md := c.Markdown()
	for _, want := range []string{"![preview image](<https://img.test/a (1).png>)", "**[WATCH LIVE](<https://x.test/a b>)**"} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestSafeLink(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"https://example.com/post?id=1", true},
		{"  http://example.com  ", true},
		{"javascript:alert(1)", false},
		{"/relative/path", false},
		{"", false},
	}
	for _, tt := range tests {
		got, ok := SafeLink(tt.raw)
		if ok != tt.want {
			t.Fatalf("SafeLink(%q) ok = %v, want %v", tt.raw, ok, tt.want)
		}
		if ok && got != strings.TrimSpace(tt.raw) {
			t.Fatalf("SafeLink(%q) = %q", tt.raw, got)
		}
	}
}
