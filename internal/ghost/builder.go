package ghost

import (
	"strings"
	"time"

	"github.com/sapienskid/witch/internal/note"
)

const (
	defaultStatus     = "draft"
	defaultVisibility = "public"
)

// dateRendering is the wire shape the admin API expects for timestamps.
const dateRendering = "2006-01-02T15:04:05.000Z"

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Builder assembles a Post from note metadata plus plugin-wide defaults.
type Builder struct {
	DefaultStatus string
	DefaultAuthor string // comma-separated emails or names
	DefaultTags   string // comma-separated or bracketed list
}

// Build maps metadata and rendered HTML into the remote schema. basename
// is the title fallback; existingTags lets tag entries reuse canonical
// remote slugs.
func (b *Builder) Build(basename string, meta note.Metadata, html string, existingTags []Tag) (*Post, error) {
	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = strings.TrimSpace(basename)
	}
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if strings.TrimSpace(html) == "" {
		return nil, ErrEmptyContent
	}

	status := meta.Status
	if status == "" {
		status = b.DefaultStatus
	}
	if status == "" {
		status = defaultStatus
	}
	visibility := meta.Visibility
	if visibility == "" {
		visibility = defaultVisibility
	}
	slug := strings.TrimSpace(meta.Slug)
	if slug == "" {
		slug = Slugify(title)
	}

	post := &Post{
		Title:      title,
		HTML:       html,
		Status:     status,
		Slug:       slug,
		Visibility: visibility,
		Featured:   bool(meta.Featured),
	}

	post.Excerpt = strings.TrimSpace(meta.Excerpt)
	post.CustomExcerpt = strings.TrimSpace(meta.CustomExcerpt)
	post.FeatureImage = strings.TrimSpace(meta.FeatureImage)
	post.MetaTitle = strings.TrimSpace(meta.MetaTitle)
	post.MetaDescription = strings.TrimSpace(meta.MetaDescription)
	post.OGTitle = strings.TrimSpace(meta.OGTitle)
	post.OGDescription = strings.TrimSpace(meta.OGDescription)
	post.OGImage = strings.TrimSpace(meta.OGImage)
	post.TwitterTitle = strings.TrimSpace(meta.TwitterTitle)
	post.TwitterDescription = strings.TrimSpace(meta.TwitterDescription)
	post.TwitterImage = strings.TrimSpace(meta.TwitterImage)
	post.CodeinjectionHead = strings.TrimSpace(meta.CodeinjectionHead)
	post.CodeinjectionFoot = strings.TrimSpace(meta.CodeinjectionFoot)

	// A scheduling timestamp rides along only when it actually parses.
	if normalized, ok := NormalizeDate(meta.PublishedAt); ok {
		post.PublishedAt = normalized
	}

	post.Tags = b.collectTags(meta.Tags, existingTags)
	post.Authors = b.authorRefs()

	return post, nil
}

// NormalizeDate widens a date-shaped value to the wire format. Bare
// YYYY-MM-DD becomes midnight UTC; unparseable values report false.
func NormalizeDate(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC().Format(dateRendering), true
		}
	}
	return "", false
}

// collectTags merges note tags with the configured defaults,
// case-insensitively deduplicated in first-seen order. Names already known
// remotely keep their canonical casing and slug.
func (b *Builder) collectTags(noteTags []string, existing []Tag) []Tag {
	var tags []Tag
	seen := make(map[string]bool)

	appendTag := func(value string) {
		clean := strings.TrimSpace(value)
		lower := strings.ToLower(clean)
		if clean == "" || seen[lower] {
			return
		}
		seen[lower] = true
		for _, t := range existing {
			if strings.ToLower(t.Name) == lower {
				tags = append(tags, Tag{Name: t.Name, Slug: t.Slug})
				return
			}
		}
		tags = append(tags, Tag{Name: clean, Slug: Slugify(clean)})
	}

	for _, t := range noteTags {
		appendTag(t)
	}
	for _, t := range note.SplitList(b.DefaultTags) {
		appendTag(t)
	}
	return tags
}

// authorRefs turns the configured author list into admin API references:
// email-shaped entries pass through, anything else becomes a slug
// reference.
func (b *Builder) authorRefs() []Author {
	var authors []Author
	for _, entry := range strings.Split(b.DefaultAuthor, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "@") {
			authors = append(authors, Author{Email: entry})
		} else {
			authors = append(authors, Author{Slug: Slugify(entry)})
		}
	}
	return authors
}
