package publish

import (
	"context"
	"fmt"

	"github.com/sapienskid/witch/internal/config"
	"github.com/sapienskid/witch/internal/ghost"
	"github.com/sapienskid/witch/internal/images"
	"github.com/sapienskid/witch/internal/logger"
	"github.com/sapienskid/witch/internal/note"
	"github.com/sapienskid/witch/internal/render"
	"github.com/sapienskid/witch/internal/storage"
	"github.com/sapienskid/witch/internal/vault"
)

// Action is the reconciliation outcome of one publish.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
)

// Outcome reports what one publish did.
type Outcome struct {
	Action   Action
	Title    string
	Slug     string
	Uploaded int
}

// Publisher wires the full note-to-post pipeline around a vault and a
// remote site.
type Publisher struct {
	cfg      *config.Config
	graph    vault.Graph
	pipeline *images.Pipeline
	renderer *render.Renderer
	client   *ghost.Client
	builder  *ghost.Builder
	log      *logger.Logger
}

// New assembles a Publisher. uploader may be nil when object storage is
// not fully configured; image references then degrade instead of
// uploading.
func New(cfg *config.Config, graph vault.Graph, uploader storage.Uploader, client *ghost.Client, lg *logger.Logger) *Publisher {
	if lg == nil {
		lg = logger.Discard()
	}
	return &Publisher{
		cfg:      cfg,
		graph:    graph,
		pipeline: images.New(graph, uploader, cfg.R2.ImagePath, lg),
		renderer: render.New(graph, render.Options{
			ConvertWikilinks: cfg.ConvertWikilinks,
			AddSourceLink:    cfg.AddSourceLink,
		}, lg),
		client:  client,
		builder: &ghost.Builder{DefaultStatus: cfg.DefaultStatus, DefaultAuthor: cfg.DefaultAuthor, DefaultTags: cfg.DefaultTags},
		log:     lg,
	}
}

// Publish runs the whole chain for one note: split front matter, relocate
// images, render HTML, assemble the post, then create or update remotely
// keyed by slug.
func (p *Publisher) Publish(ctx context.Context, notePath string) (*Outcome, error) {
	file, err := p.findNote(notePath)
	if err != nil {
		return nil, err
	}
	raw, err := p.graph.ReadText(file)
	if err != nil {
		return nil, fmt.Errorf("read note %s: %w", file.Path, err)
	}
	doc := note.Split(raw)

	title := doc.Metadata.Title
	if title == "" {
		title = file.Basename
	}

	body := doc.Body
	uploaded := 0
	if p.cfg.R2.Ready() {
		res := p.pipeline.Process(ctx, body, file, title, images.Options{Upload: true})
		body = res.Content
		uploaded = res.Uploaded
		if uploaded > 0 {
			p.log.Info("uploaded images", "count", uploaded)
		}
	}

	html := p.renderer.Render(body, file)

	existingTags := p.client.Tags(ctx)
	post, err := p.builder.Build(file.Basename, doc.Metadata, html, existingTags)
	if err != nil {
		return nil, err
	}

	identifier := post.Slug
	if identifier == "" {
		identifier = post.Title
	}
	outcome := &Outcome{Title: post.Title, Slug: post.Slug, Uploaded: uploaded}

	if existing := p.client.FindPost(ctx, identifier); existing != nil {
		// The remote's updated_at is the optimistic-concurrency token.
		post.UpdatedAt = existing.UpdatedAt
		if _, err := p.client.UpdatePost(ctx, existing.ID, post); err != nil {
			return nil, err
		}
		outcome.Action = ActionUpdated
		return outcome, nil
	}

	if _, err := p.client.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	outcome.Action = ActionCreated
	return outcome, nil
}

// UploadImages uploads the note's embedded images and rewrites the note
// file in place to point at the uploaded copies. Returns how many objects
// were uploaded; the note is only written back when that count is
// positive.
func (p *Publisher) UploadImages(ctx context.Context, notePath string) (int, error) {
	file, err := p.findNote(notePath)
	if err != nil {
		return 0, err
	}
	raw, err := p.graph.ReadText(file)
	if err != nil {
		return 0, fmt.Errorf("read note %s: %w", file.Path, err)
	}
	res := p.pipeline.Process(ctx, raw, file, file.Basename, images.Options{Upload: true, ReplaceInPlace: true})
	if res.Uploaded == 0 {
		return 0, nil
	}
	if err := p.graph.WriteText(file, res.Content); err != nil {
		return res.Uploaded, fmt.Errorf("write note %s: %w", file.Path, err)
	}
	return res.Uploaded, nil
}

func (p *Publisher) findNote(notePath string) (*vault.File, error) {
	if f, ok := p.graph.ByPath(notePath); ok {
		return f, nil
	}
	if f := vault.Resolve(p.graph, notePath, nil); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("note not found in vault: %s", notePath)
}
