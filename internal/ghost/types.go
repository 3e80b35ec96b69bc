package ghost

import "encoding/json"

// Post mirrors the admin API post resource. Optional fields carry
// omitempty so the encoded payload naturally drops anything not provided;
// Featured stays unconditional because false is a meaningful value to the
// remote.
type Post struct {
	ID                 string   `json:"id,omitempty"`
	Title              string   `json:"title"`
	Slug               string   `json:"slug,omitempty"`
	HTML               string   `json:"html,omitempty"`
	Mobiledoc          string   `json:"mobiledoc,omitempty"`
	Status             string   `json:"status,omitempty"`
	Visibility         string   `json:"visibility,omitempty"`
	Featured           bool     `json:"featured"`
	CreatedAt          string   `json:"created_at,omitempty"`
	UpdatedAt          string   `json:"updated_at,omitempty"`
	PublishedAt        string   `json:"published_at,omitempty"`
	Tags               []Tag    `json:"tags,omitempty"`
	Authors            []Author `json:"authors,omitempty"`
	FeatureImage       string   `json:"feature_image,omitempty"`
	Excerpt            string   `json:"excerpt,omitempty"`
	CustomExcerpt      string   `json:"custom_excerpt,omitempty"`
	MetaTitle          string   `json:"meta_title,omitempty"`
	MetaDescription    string   `json:"meta_description,omitempty"`
	OGTitle            string   `json:"og_title,omitempty"`
	OGDescription      string   `json:"og_description,omitempty"`
	OGImage            string   `json:"og_image,omitempty"`
	TwitterTitle       string   `json:"twitter_title,omitempty"`
	TwitterDescription string   `json:"twitter_description,omitempty"`
	TwitterImage       string   `json:"twitter_image,omitempty"`
	CodeinjectionHead  string   `json:"codeinjection_head,omitempty"`
	CodeinjectionFoot  string   `json:"codeinjection_foot,omitempty"`
}

type Tag struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// Author references a site user either by email or by id/slug. The admin
// API accepts a bare email string in the authors array, so Email marshals
// as a plain string and the struct form is used otherwise.
type Author struct {
	Email string `json:"-"`
	ID    string `json:"id,omitempty"`
	Slug  string `json:"slug,omitempty"`
}

func (a Author) MarshalJSON() ([]byte, error) {
	if a.Email != "" {
		return json.Marshal(a.Email)
	}
	type plain Author
	return json.Marshal(plain(a))
}
