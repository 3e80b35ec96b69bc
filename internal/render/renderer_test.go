package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sapienskid/witch/internal/vault"
)

func buildVault(t *testing.T, files map[string]string) *vault.DirVault {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(abs, []byte(content), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	v, err := vault.Open(root)
	if err != nil {
		t.Fatalf("open vault: %v", err)
	}
	return v
}

func TestWikiLinkConversion(t *testing.T) {
	v := buildVault(t, map[string]string{"post.md": "x"})
	r := New(v, Options{ConvertWikilinks: true}, nil)
	current, _ := v.ByPath("post.md")

	html := r.Render("See [[My Note|click here]] and [[Other Page]].", current)
	if !strings.Contains(html, `<a href="/my-note">click here</a>`) {
		t.Fatalf("display link missing:\n%s", html)
	}
	if !strings.Contains(html, `<a href="/other-page">Other Page</a>`) {
		t.Fatalf("target-as-display link missing:\n%s", html)
	}
}

func TestWikiLinkHrefKeepsPunctuation(t *testing.T) {
	v := buildVault(t, map[string]string{"post.md": "x"})
	r := New(v, Options{ConvertWikilinks: true}, nil)
	current, _ := v.ByPath("post.md")

	// Hrefs only lowercase and hyphenate spaces; punctuation stays.
	html := r.Render("See [[My Note: Part 2]].", current)
	if !strings.Contains(html, `<a href="/my-note:-part-2">My Note: Part 2</a>`) {
		t.Fatalf("punctuation must survive in the href:\n%s", html)
	}
}

func TestWikiLinkConversionDisabled(t *testing.T) {
	v := buildVault(t, map[string]string{"post.md": "x"})
	r := New(v, Options{}, nil)
	current, _ := v.ByPath("post.md")

	html := r.Render("See [[My Note]].", current)
	if strings.Contains(html, `href="/my-note"`) {
		t.Fatalf("conversion should be off:\n%s", html)
	}
}

func TestImageEmbedsSurviveWikiLinkConversion(t *testing.T) {
	v := buildVault(t, map[string]string{
		"post.md": "x",
		"pic.png": "bytes",
	})
	r := New(v, Options{ConvertWikilinks: true}, nil)
	current, _ := v.ByPath("post.md")

	html := r.Render("![[pic.png]]", current)
	if !strings.Contains(html, "![[pic.png]]") {
		t.Fatalf("image embed token must not be rewritten as a link:\n%s", html)
	}
}

func TestEmbedInliningStripsFrontmatter(t *testing.T) {
	v := buildVault(t, map[string]string{
		"post.md":    "x",
		"section.md": "---\ntitle: Section\n---\n## Inlined Heading\n\nInlined body.\n",
	})
	r := New(v, Options{}, nil)
	current, _ := v.ByPath("post.md")

	html := r.Render("Intro.\n\n![[section.md]]\n\nOutro.", current)
	if !strings.Contains(html, "<h2>Inlined Heading</h2>") {
		t.Fatalf("embedded heading missing:\n%s", html)
	}
	if strings.Contains(html, "title: Section") {
		t.Fatalf("embedded front matter leaked:\n%s", html)
	}
}

func TestEmbedMissProducesMarker(t *testing.T) {
	v := buildVault(t, map[string]string{"post.md": "x"})
	r := New(v, Options{}, nil)
	current, _ := v.ByPath("post.md")

	html := r.Render("![[nowhere.md]]", current)
	if !strings.Contains(html, "[Error processing: nowhere.md]") {
		t.Fatalf("error marker missing:\n%s", html)
	}
}

func TestCyclicEmbedsDoNotRecurse(t *testing.T) {
	v := buildVault(t, map[string]string{
		"a.md": "A body\n\n![[b.md]]\n",
		"b.md": "B body\n\n![[a.md]]\n",
	})
	r := New(v, Options{}, nil)
	current, _ := v.ByPath("a.md")
	raw, _ := v.ReadText(current)

	html := r.Render(raw, current)
	if !strings.Contains(html, "B body") {
		t.Fatalf("first level should inline:\n%s", html)
	}
	if !strings.Contains(html, "[Error processing: a.md]") {
		t.Fatalf("cycle should degrade to a marker:\n%s", html)
	}
}

func TestAttributionFooter(t *testing.T) {
	v := buildVault(t, map[string]string{"post.md": "x"})
	current, _ := v.ByPath("post.md")

	r := New(v, Options{AddSourceLink: true}, nil)
	html := r.Render("Body.", current)
	want := "Originally published from " + v.Name() + " vault"
	if !strings.Contains(html, want) {
		t.Fatalf("footer %q missing:\n%s", want, html)
	}

	r = New(v, Options{}, nil)
	if html := r.Render("Body.", current); strings.Contains(html, "Originally published") {
		t.Fatalf("footer should be off:\n%s", html)
	}
}

func TestRawFigurePassesThrough(t *testing.T) {
	v := buildVault(t, map[string]string{"post.md": "x"})
	r := New(v, Options{}, nil)
	current, _ := v.ByPath("post.md")

	fragment := `<figure><img src="https://cdn.example.com/a.png" alt="c"><figcaption>c</figcaption></figure>`
	html := r.Render("Before.\n\n"+fragment+"\n\nAfter.", current)
	if !strings.Contains(html, fragment) {
		t.Fatalf("raw HTML must pass through unchanged:\n%s", html)
	}
	if strings.Count(html, "<figure") != 1 {
		t.Fatalf("figure must not be re-wrapped:\n%s", html)
	}
}

func TestBareURLAutolinks(t *testing.T) {
	v := buildVault(t, map[string]string{"post.md": "x"})
	r := New(v, Options{}, nil)
	current, _ := v.ByPath("post.md")

	html := r.Render("Visit https://example.com/page for more.", current)
	if !strings.Contains(html, `<a href="https://example.com/page">`) {
		t.Fatalf("bare URL should autolink:\n%s", html)
	}
}

func TestFallbackHTMLSubset(t *testing.T) {
	md := "# Title\n\nSome **bold** and *italic* text with [a link](https://x.test) and `code`.\n\n![pic](img.png)"
	html := fallbackHTML(md)
	for _, want := range []string{
		"<h1>Title</h1>",
		"<strong>bold</strong>",
		"<em>italic</em>",
		`<a href="https://x.test">a link</a>`,
		"<code>code</code>",
		`<img src="img.png" alt="pic" />`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("fallback output missing %q:\n%s", want, html)
		}
	}
}
