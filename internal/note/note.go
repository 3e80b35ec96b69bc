package note

import (
	"strings"

	"github.com/adrg/frontmatter"
)

// Statuses and visibilities Ghost accepts. Anything else in front matter
// is dropped rather than sent.
var (
	validStatuses   = map[string]bool{"draft": true, "published": true, "scheduled": true}
	validVisibility = map[string]bool{"public": true, "members": true, "paid": true}
)

// Document is a note split into structured metadata and markdown body.
type Document struct {
	Metadata Metadata
	Body     string
}

// Metadata mirrors the optional Ghost post fields a note can carry in its
// front matter. Absent fields stay zero and are omitted from the outgoing
// payload; absence and empty string are both "not provided".
type Metadata struct {
	Title              string  `yaml:"title"`
	Slug               string  `yaml:"slug"`
	Status             string  `yaml:"status"`
	Visibility         string  `yaml:"visibility"`
	Featured           Boolish `yaml:"featured"`
	Tags               TagList `yaml:"tags"`
	PublishedAt        string  `yaml:"published_at"`
	Excerpt            string  `yaml:"excerpt"`
	CustomExcerpt      string  `yaml:"custom_excerpt"`
	FeatureImage       string  `yaml:"feature_image"`
	MetaTitle          string  `yaml:"meta_title"`
	MetaDescription    string  `yaml:"meta_description"`
	OGTitle            string  `yaml:"og_title"`
	OGDescription      string  `yaml:"og_description"`
	OGImage            string  `yaml:"og_image"`
	TwitterTitle       string  `yaml:"twitter_title"`
	TwitterDescription string  `yaml:"twitter_description"`
	TwitterImage       string  `yaml:"twitter_image"`
	CodeinjectionHead  string  `yaml:"codeinjection_head"`
	CodeinjectionFoot  string  `yaml:"codeinjection_foot"`
}

// Split separates a leading front-matter block from the body. Notes
// without a block, and notes whose block fails to parse, come back with
// empty metadata and the raw text untouched. Split never errors; a broken
// block must not stop a publish.
func Split(raw string) Document {
	var meta Metadata
	body, err := frontmatter.Parse(strings.NewReader(raw), &meta)
	if err != nil {
		return Document{Body: raw}
	}
	meta.Status = normalizeEnum(meta.Status, validStatuses)
	meta.Visibility = normalizeEnum(meta.Visibility, validVisibility)
	return Document{Metadata: meta, Body: string(body)}
}

func normalizeEnum(value string, valid map[string]bool) string {
	if valid[value] {
		return value
	}
	return ""
}

// ParseBool implements the loose boolean coercion used throughout the
// settings and front matter: true/yes/1, case-insensitively, else false.
func ParseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "1":
		return true
	}
	return false
}

// StripQuotes removes a single layer of surrounding quotes from a scalar.
func StripQuotes(value string) string {
	value = strings.TrimSpace(value)
	for _, q := range []string{`"`, `'`} {
		if len(value) >= 2 && strings.HasPrefix(value, q) && strings.HasSuffix(value, q) {
			return value[1 : len(value)-1]
		}
	}
	return value
}
