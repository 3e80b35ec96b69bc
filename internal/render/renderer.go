package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/sapienskid/witch/internal/logger"
	"github.com/sapienskid/witch/internal/media"
	"github.com/sapienskid/witch/internal/note"
	"github.com/sapienskid/witch/internal/vault"
)

var (
	// wikiLinkPattern also matches the bracket part of embeds; the leading
	// capture keeps embed tokens intact.
	wikiLinkPattern = regexp.MustCompile(`(!?)\[\[([^\]]+?)\]\]`)
	embedPattern    = regexp.MustCompile(`!\[\[([^\]]+?)\]\]`)
)

// Options toggle the presentation steps.
type Options struct {
	ConvertWikilinks bool
	AddSourceLink    bool
}

// Renderer turns a (possibly image-rewritten) note body into the final
// HTML the CMS receives.
type Renderer struct {
	graph vault.Graph
	opts  Options
	md    goldmark.Markdown
	log   *logger.Logger
}

func New(graph vault.Graph, opts Options, lg *logger.Logger) *Renderer {
	if lg == nil {
		lg = logger.Discard()
	}
	return &Renderer{
		graph: graph,
		opts:  opts,
		// Raw HTML passes through (the image pipeline emits figure
		// fragments) and bare URLs autolink so the card post-processing
		// can find them.
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		log: lg,
	}
}

// Render runs the full chain: wiki-link conversion, note embed inlining,
// attribution footer, markdown conversion, card post-processing.
func (r *Renderer) Render(body string, current *vault.File) string {
	processed := body
	if r.opts.ConvertWikilinks {
		processed = convertWikiLinks(processed)
	}
	visited := map[string]bool{}
	if current != nil {
		visited[current.Path] = true
	}
	processed = r.inlineEmbeds(processed, current, visited)
	if r.opts.AddSourceLink {
		processed += fmt.Sprintf("\n\n---\n*Originally published from %s vault*", r.graph.Name())
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(processed), &buf); err != nil {
		r.log.Warn("markdown conversion failed, using fallback renderer", "err", err)
		return postProcessCards(fallbackHTML(processed))
	}
	return postProcessCards(buf.String())
}

// convertWikiLinks rewrites [[target|display]] to a standard link whose
// href is the slug of the target. Embed tokens pass through untouched.
func convertWikiLinks(body string) string {
	return wikiLinkPattern.ReplaceAllStringFunc(body, func(match string) string {
		groups := wikiLinkPattern.FindStringSubmatch(match)
		if groups[1] == "!" {
			return match
		}
		target, display, found := strings.Cut(groups[2], "|")
		target = strings.TrimSpace(target)
		if !found || strings.TrimSpace(display) == "" {
			display = target
		} else {
			display = strings.TrimSpace(display)
		}
		return fmt.Sprintf("[%s](/%s)", display, wikiHref(target))
	})
}

// wikiHref derives the link href: lowercase with spaces as hyphens.
// Punctuation survives, unlike the stricter post slug rule.
func wikiHref(target string) string {
	return strings.ReplaceAll(strings.ToLower(target), " ", "-")
}

// inlineEmbeds replaces each remaining embed that resolves to a non-image
// file with that file's body, front matter stripped and blank-line
// padded. The visited set stops cyclic embeds from recursing forever.
func (r *Renderer) inlineEmbeds(body string, current *vault.File, visited map[string]bool) string {
	return embedPattern.ReplaceAllStringFunc(body, func(match string) string {
		inner := embedPattern.FindStringSubmatch(match)[1]
		target := strings.TrimSpace(strings.SplitN(inner, "|", 2)[0])

		file := vault.Resolve(r.graph, target, current)
		if file == nil {
			return fmt.Sprintf("*[Error processing: %s]*", target)
		}
		if media.IsImageExt(file.Extension) {
			return match
		}
		if visited[file.Path] {
			r.log.Warn("cyclic embed, not inlining", "path", file.Path)
			return fmt.Sprintf("*[Error processing: %s]*", target)
		}
		visited[file.Path] = true
		raw, err := r.graph.ReadText(file)
		if err != nil {
			r.log.Warn("failed to inline embed", "path", file.Path, "err", err)
			return fmt.Sprintf("*[Error processing: %s]*", target)
		}
		doc := note.Split(raw)
		return "\n\n" + r.inlineEmbeds(doc.Body, file, visited) + "\n\n"
	})
}
