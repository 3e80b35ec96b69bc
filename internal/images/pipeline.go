package images

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/sapienskid/witch/internal/ghost"
	"github.com/sapienskid/witch/internal/logger"
	"github.com/sapienskid/witch/internal/media"
	"github.com/sapienskid/witch/internal/storage"
	"github.com/sapienskid/witch/internal/vault"
)

var (
	embedPattern   = regexp.MustCompile(`!\[\[([^\]]+?)\]\]`)
	mdImagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	headingPattern = regexp.MustCompile(`(?m)^#+[ \t]+(.*)$`)
	remoteSrc      = regexp.MustCompile(`(?i)^(https?:|data:)`)
)

// Options selects the pipeline mode: whether to upload at all, and
// whether no-upload fallbacks should point at the resolved vault path
// (replace-in-place) or keep the original token text.
type Options struct {
	Upload         bool
	ReplaceInPlace bool
}

// Result is the rewritten body plus how many objects were uploaded.
type Result struct {
	Content  string
	Uploaded int
}

// Pipeline rewrites local image references in a note body to uploaded
// copies. A nil uploader disables uploading; references then degrade to
// their best available fallback.
type Pipeline struct {
	graph     vault.Graph
	uploader  storage.Uploader
	keyPrefix string
	log       *logger.Logger
}

func New(graph vault.Graph, uploader storage.Uploader, keyPrefix string, lg *logger.Logger) *Pipeline {
	if lg == nil {
		lg = logger.Discard()
	}
	return &Pipeline{graph: graph, uploader: uploader, keyPrefix: keyPrefix, log: lg}
}

// run carries the per-invocation state: the upload cache (one attempt per
// distinct file identity per run) and the key counter.
type run struct {
	urls      map[string]string // resolved path -> public URL
	attempted map[string]bool
	counter   int
	uploaded  int
	title     string
}

// span is one pending rewrite, positioned against the text it was matched
// in. Edits apply back-to-front so duplicate literal tokens rewrite
// independently.
type span struct {
	start, end int
	text       string
}

// Process scans body for embed-style and markdown-style image references,
// uploads each distinct resolved file at most once, and rewrites the
// references. title seeds captions for images above the first heading.
func (p *Pipeline) Process(ctx context.Context, body string, current *vault.File, title string, opts Options) Result {
	r := &run{urls: make(map[string]string), attempted: make(map[string]bool), title: title}

	body = p.embedPass(ctx, body, current, opts, r)
	body = p.markdownPass(ctx, body, current, opts, r)

	return Result{Content: body, Uploaded: r.uploaded}
}

func (p *Pipeline) embedPass(ctx context.Context, body string, current *vault.File, opts Options, r *run) string {
	headings := scanHeadings(body)
	var edits []span
	for _, m := range embedPattern.FindAllStringSubmatchIndex(body, -1) {
		inner := body[m[2]:m[3]]
		target, alt := splitEmbedTarget(inner)
		if remoteSrc.MatchString(target) {
			continue
		}
		caption := alt
		if caption == "" {
			caption = nearestHeading(headings, m[0], r.title) + " image"
		}

		file := vault.Resolve(p.graph, target, current)
		if file == nil {
			edits = append(edits, span{m[0], m[1], errorMarker(target)})
			continue
		}
		if !media.IsImageExt(file.Extension) {
			// Note embeds are the renderer's job.
			continue
		}

		url := p.uploadOnce(ctx, file, caption, r, opts)
		if url != "" {
			edits = append(edits, span{m[0], m[1], figure(url, caption)})
			continue
		}
		fallback := target
		if opts.ReplaceInPlace {
			fallback = file.Path
		}
		edits = append(edits, span{m[0], m[1], fmt.Sprintf("![%s](%s)", caption, fallback)})
	}
	return applyEdits(body, edits)
}

func (p *Pipeline) markdownPass(ctx context.Context, body string, current *vault.File, opts Options, r *run) string {
	headings := scanHeadings(body)
	var edits []span
	for _, m := range mdImagePattern.FindAllStringSubmatchIndex(body, -1) {
		alt := strings.TrimSpace(body[m[2]:m[3]])
		src := strings.TrimSpace(body[m[4]:m[5]])
		if strings.HasPrefix(src, "<") && strings.HasSuffix(src, ">") {
			src = strings.TrimSpace(src[1 : len(src)-1])
		}
		if remoteSrc.MatchString(src) {
			continue
		}
		caption := alt
		if caption == "" {
			caption = nearestHeading(headings, m[0], r.title) + " image"
		}

		file := vault.Resolve(p.graph, src, current)
		if file == nil || !media.IsImageExt(file.Extension) {
			label := alt
			if label == "" {
				label = src
			}
			edits = append(edits, span{m[0], m[1], fmt.Sprintf("*[Image error: %s]*", label)})
			continue
		}

		url := p.uploadOnce(ctx, file, caption, r, opts)
		if url != "" {
			edits = append(edits, span{m[0], m[1], figure(url, caption)})
			continue
		}
		edits = append(edits, span{m[0], m[1], fmt.Sprintf("![%s](%s)", caption, src)})
	}
	return applyEdits(body, edits)
}

// uploadOnce returns the public URL for a resolved file, uploading on
// first sight and reusing the cached URL after. A failed upload is also
// remembered so the file is attempted at most once per run.
func (p *Pipeline) uploadOnce(ctx context.Context, file *vault.File, caption string, r *run, opts Options) string {
	if url, ok := r.urls[file.Path]; ok {
		return url
	}
	if !opts.Upload || p.uploader == nil || r.attempted[file.Path] {
		return ""
	}
	r.attempted[file.Path] = true

	data, err := p.graph.ReadBinary(file)
	if err != nil {
		p.log.Warn("failed to read image", "path", file.Path, "err", err)
		return ""
	}
	r.counter++
	key := p.objectKey(r.title, file.Extension, r.counter)
	metadata := map[string]string{}
	if caption != "" {
		metadata["caption"] = caption
	}
	url, err := p.uploader.Upload(ctx, key, data, media.MIMEType(file.Extension), metadata)
	if err != nil {
		p.log.Warn("image upload failed", "path", file.Path, "key", key, "err", err)
		return ""
	}
	r.urls[file.Path] = url
	r.uploaded++
	return url
}

// objectKey builds "<prefix>/<title-slug>-<n>.<ext>" with the prefix
// slash-normalized. Titles that slugify to nothing get a short random
// stem instead.
func (p *Pipeline) objectKey(title, ext string, n int) string {
	base := ghost.Slugify(title)
	if base == "" {
		base = uuid.NewString()[:8]
	}
	name := fmt.Sprintf("%s-%d.%s", base, n, strings.ToLower(ext))
	prefix := strings.Trim(p.keyPrefix, "/")
	for strings.Contains(prefix, "//") {
		prefix = strings.ReplaceAll(prefix, "//", "/")
	}
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

type heading struct {
	pos  int
	text string
}

func scanHeadings(body string) []heading {
	var out []heading
	for _, m := range headingPattern.FindAllStringSubmatchIndex(body, -1) {
		out = append(out, heading{pos: m[0], text: strings.TrimSpace(body[m[2]:m[3]])})
	}
	return out
}

// nearestHeading picks the last heading positioned before pos, falling
// back to the note title when none precedes the match.
func nearestHeading(headings []heading, pos int, fallback string) string {
	current := fallback
	for _, h := range headings {
		if h.pos < pos {
			current = h.text
		} else {
			break
		}
	}
	return current
}

func splitEmbedTarget(inner string) (target, alt string) {
	parts := strings.SplitN(inner, "|", 2)
	target = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		alt = strings.TrimSpace(parts[1])
	}
	return target, alt
}

func figure(url, caption string) string {
	return fmt.Sprintf(`<figure><img src="%s" alt="%s"><figcaption>%s</figcaption></figure>`, url, caption, caption)
}

func errorMarker(target string) string {
	return fmt.Sprintf("*[Error processing: %s]*", target)
}

func applyEdits(src string, edits []span) string {
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })
	for _, e := range edits {
		src = src[:e.start] + e.text + src[e.end:]
	}
	return src
}
