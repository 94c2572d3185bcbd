package tabs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/jask/cardfriends/internal/article"
	"github.com/jask/cardfriends/internal/tui/core"
	"github.com/jask/cardfriends/internal/tui/widgets"
)

const ArticleTabID = "article"

type linkOpenedMsg struct {
	url string
	err error
}

// LinkOpener opens a URL in a new browsing context.
type LinkOpener interface {
	OpenLink(url string) error
}

// MarkdownRenderer turns markdown into terminal output wrapped at width.
type MarkdownRenderer func(md string, width int) (string, error)

// focus order of the form controls
const (
	focusTitle = iota
	focusDescription
	focusImage
	focusCTA
	focusLink
	focusSubmit
	focusCount
)

type ArticleTab struct {
	form   *article.Form
	title  textinput.Model
	desc   textarea.Model
	image  textinput.Model
	link   textinput.Model
	focus  int
	opener LinkOpener
	render MarkdownRenderer
	log    *zap.Logger
}

func NewArticleTab(opener LinkOpener, render MarkdownRenderer, log *zap.Logger) *ArticleTab {
	if render == nil {
		render = NewGlamourRenderer().Render
	}
	if log == nil {
		log = zap.NewNop()
	}
	t := &ArticleTab{opener: opener, render: render, log: log}
	t.reset()
	return t
}

func (t *ArticleTab) ID() string    { return ArticleTabID }
func (t *ArticleTab) Title() string { return "Article Form" }
func (t *ArticleTab) Scope() string { return core.ScopeArticle }

// Form exposes the form state backing the tab.
func (t *ArticleTab) Form() *article.Form { return t.form }

func (t *ArticleTab) Mount(m *core.Model) tea.Cmd {
	t.reset()
	return textinput.Blink
}

func (t *ArticleTab) reset() {
	t.form = article.NewForm()

	t.title = newInput("this is title", article.TitleLimit, t.form.Value(article.FieldTitle))
	t.image = newInput("https://example.com/image.jpg", 0, t.form.Value(article.FieldImageURL))
	t.link = newInput("https://example.com", 0, t.form.Value(article.FieldLinkOutURL))

	t.desc = textarea.New()
	t.desc.Placeholder = "type something"
	t.desc.CharLimit = article.DescriptionLimit
	t.desc.ShowLineNumbers = false
	t.desc.SetHeight(3)
	t.desc.SetValue(t.form.Value(article.FieldDescription))

	t.focus = focusTitle
	t.applyFocus()
}

func newInput(placeholder string, limit int, value string) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.SetValue(value)
	return in
}

func (t *ArticleTab) applyFocus() {
	t.title.Blur()
	t.desc.Blur()
	t.image.Blur()
	t.link.Blur()
	switch t.focus {
	case focusTitle:
		t.title.Focus()
	case focusDescription:
		t.desc.Focus()
	case focusImage:
		t.image.Focus()
	case focusLink:
		t.link.Focus()
	}
}

func (t *ArticleTab) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case linkOpenedMsg:
		if msg.err != nil {
			t.log.Warn("open link failed", zap.String("url", msg.url), zap.Error(msg.err))
			m.SetError(msg.err)
			return nil
		}
		m.SetStatus("Opened " + msg.url)
		return nil
	case tea.KeyMsg:
		return t.handleKey(m, msg)
	}
	return t.forward(msg)
}

func (t *ArticleTab) handleKey(m *core.Model, msg tea.KeyMsg) tea.Cmd {
	keys := m.Keys()
	switch {
	case keys.IsAction(msg, "next-field", core.ScopeArticle):
		t.focus = (t.focus + 1) % focusCount
		t.applyFocus()
		return nil
	case keys.IsAction(msg, "prev-field", core.ScopeArticle):
		t.focus = (t.focus - 1 + focusCount) % focusCount
		t.applyFocus()
		return nil
	case keys.IsAction(msg, "submit", core.ScopeArticle):
		t.Submit(m)
		return nil
	case keys.IsAction(msg, "open-link", core.ScopeArticle):
		return t.OpenLink(m)
	}

	switch t.focus {
	case focusCTA:
		switch msg.String() {
		case "right", "l", " ", "down", "j":
			t.form.NextCTA()
		case "left", "h", "up", "k":
			t.form.PrevCTA()
		case "enter":
			t.Submit(m)
		}
		return nil
	case focusSubmit:
		if msg.String() == "enter" || msg.String() == " " {
			t.Submit(m)
		}
		return nil
	case focusTitle, focusImage, focusLink:
		if msg.String() == "enter" {
			t.Submit(m)
			return nil
		}
	}
	return t.forward(msg)
}

// forward hands msg to the focused input and records any value change.
func (t *ArticleTab) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch t.focus {
	case focusTitle:
		t.title, cmd = t.title.Update(msg)
		t.sync(article.FieldTitle, t.title.Value())
	case focusDescription:
		t.desc, cmd = t.desc.Update(msg)
		t.sync(article.FieldDescription, t.desc.Value())
	case focusImage:
		t.image, cmd = t.image.Update(msg)
		t.sync(article.FieldImageURL, t.image.Value())
	case focusLink:
		t.link, cmd = t.link.Update(msg)
		t.sync(article.FieldLinkOutURL, t.link.Value())
	}
	return cmd
}

func (t *ArticleTab) sync(field article.Field, value string) {
	if t.form.Value(field) == value {
		return
	}
	if err := t.form.UpdateField(field, value); err != nil {
		t.log.Warn("update field", zap.String("field", string(field)), zap.Error(err))
	}
}

// Submit validates the form, as the Preview button does.
func (t *ArticleTab) Submit(m *core.Model) {
	if t.form.Submit() {
		m.SetStatus("Preview updated")
		return
	}
	n := len(t.form.Errors())
	m.SetError(fmt.Errorf("%d field(s) need attention", n))
}

// OpenLink opens the preview card's outbound link once the preview is shown.
func (t *ArticleTab) OpenLink(m *core.Model) tea.Cmd {
	if !t.form.PreviewVisible() {
		m.SetStatus("Preview the card before opening its link")
		return nil
	}
	if t.opener == nil {
		return nil
	}
	link := t.form.Preview().LinkOutURL
	url, ok := article.SafeLink(link)
	if !ok {
		m.SetError(fmt.Errorf("cannot open %q: not an http(s) link", link))
		return nil
	}
	opener := t.opener
	return func() tea.Msg {
		return linkOpenedMsg{url: url, err: opener.OpenLink(url)}
	}
}

func (t *ArticleTab) Build(m *core.Model) widgets.Widget {
	return widgets.HStack{
		Gap: 1,
		Widgets: []widgets.Widget{
			widgets.Func(t.renderForm),
			widgets.Func(t.renderPreview),
		},
	}
}

func (t *ArticleTab) renderForm(width, height int) string {
	inner := max(10, width-4)
	t.title.Width = inner - 1
	t.image.Width = inner - 1
	t.link.Width = inner - 1
	t.desc.SetWidth(inner)

	var b strings.Builder
	t.field(&b, "Long title", article.FieldTitle, t.title.View(), t.focus == focusTitle)
	t.field(&b, "Description", article.FieldDescription, t.desc.View(), t.focus == focusDescription)
	t.field(&b, "Image Url", article.FieldImageURL, t.image.View(), t.focus == focusImage)

	cta := "  " + t.form.Value(article.FieldCTAText) + "  "
	if t.focus == focusCTA {
		cta = "◀ " + t.form.Value(article.FieldCTAText) + " ▶"
	}
	t.field(&b, "CTA Text", article.FieldCTAText, cta, t.focus == focusCTA)
	t.field(&b, "Click Url", article.FieldLinkOutURL, t.link.View(), t.focus == focusLink)

	button := buttonStyle.Render("Preview")
	if t.focus == focusSubmit {
		button = buttonActive.Render("Preview")
	}
	b.WriteString(button)

	invalid := len(t.form.Errors()) > 0
	return widgets.Pane{Title: "Article Input Form", Content: b.String(), Active: true, Invalid: invalid}.Render(width, height)
}

func (t *ArticleTab) field(b *strings.Builder, label string, f article.Field, input string, focused bool) {
	marker := "  "
	if focused {
		marker = "› "
	}
	b.WriteString(marker + labelStyle.Render(label) + "\n")
	for _, line := range strings.Split(input, "\n") {
		b.WriteString("  " + line + "\n")
	}
	if left, ok := t.form.CharsRemaining(f); ok {
		b.WriteString("  " + hintStyle.Render(fmt.Sprintf("Characters left: %d", left)) + "\n")
	}
	if msg, ok := t.form.Error(f); ok {
		b.WriteString("  " + errorStyle.Render(msg) + "\n")
	}
}

func (t *ArticleTab) renderPreview(width, height int) string {
	content := ""
	if t.form.PreviewVisible() {
		card := t.form.Preview()
		out, err := t.render(card.Markdown(), max(10, width-4))
		if err != nil {
			t.log.Warn("render preview", zap.Error(err))
			out = card.Markdown()
		}
		content = strings.TrimRight(out, "\n") + "\n\n" + hintStyle.Render("ctrl+o opens "+card.LinkOutURL)
	}
	return widgets.Pane{Title: "Preview Panel", Content: content}.Render(width, height)
}

// GlamourRenderer renders markdown with glamour's dark style, keeping the
// term renderer until the wrap width changes.
type GlamourRenderer struct {
	width  int
	r      *glamour.TermRenderer
	builds int
}

func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{}
}

func (g *GlamourRenderer) Render(md string, width int) (string, error) {
	if g.r == nil || g.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", fmt.Errorf("glamour renderer: %w", err)
		}
		g.r, g.width = r, width
		g.builds++
	}
	out, err := g.r.Render(md)
	if err != nil {
		return "", fmt.Errorf("glamour render: %w", err)
	}
	return out, nil
}
