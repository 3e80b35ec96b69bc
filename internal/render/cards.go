package render

import (
	"fmt"
	"regexp"
)

// Post-processing that reshapes plain HTML into the CMS's card markup:
// lone images become image cards, bare video-provider URLs become embed
// cards.

var (
	paraImgPattern  = regexp.MustCompile(`<p>\s*<img([^>]+?)>\s*</p>`)
	lineImgPattern  = regexp.MustCompile(`(?m)^([ \t]*)<img([^>]+?)>$`)
	bareLinkPattern = regexp.MustCompile(`<p>\s*<a href="(https?://[^"]+)">([^<]+)</a>\s*</p>`)
	altAttrPattern  = regexp.MustCompile(`alt="([^"]*)"`)

	youtubeWatch  = regexp.MustCompile(`youtube\.com/watch\?v=([a-zA-Z0-9_-]{6,})`)
	youtubeShort  = regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{6,})`)
	youtubeShorts = regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{6,})`)
	vimeoVideo    = regexp.MustCompile(`vimeo\.com/(?:video/)?([0-9]+)`)
)

func postProcessCards(html string) string {
	processed := paraImgPattern.ReplaceAllStringFunc(html, func(match string) string {
		attrs := paraImgPattern.FindStringSubmatch(match)[1]
		return imageCard(attrs)
	})

	processed = lineImgPattern.ReplaceAllStringFunc(processed, func(match string) string {
		groups := lineImgPattern.FindStringSubmatch(match)
		return groups[1] + imageCard(groups[2])
	})

	processed = bareLinkPattern.ReplaceAllStringFunc(processed, func(match string) string {
		groups := bareLinkPattern.FindStringSubmatch(match)
		url, text := groups[1], groups[2]
		// Only a paragraph that is nothing but the URL itself qualifies.
		if url != text {
			return match
		}
		if iframe := youtubeEmbed(url); iframe != "" {
			return embedCard(iframe)
		}
		if iframe := vimeoEmbed(url); iframe != "" {
			return embedCard(iframe)
		}
		return match
	})

	return processed
}

func imageCard(attrs string) string {
	card := fmt.Sprintf(`<figure class="kg-card kg-image-card"><img%s>`, attrs)
	if alt := extractAlt(attrs); alt != "" {
		card += fmt.Sprintf("<figcaption>%s</figcaption>", alt)
	}
	return card + "</figure>"
}

func embedCard(iframe string) string {
	return fmt.Sprintf(`<figure class="kg-card kg-embed-card">%s</figure>`, iframe)
}

func extractAlt(attrs string) string {
	if m := altAttrPattern.FindStringSubmatch(attrs); m != nil {
		return m[1]
	}
	return ""
}

func youtubeEmbed(url string) string {
	var id string
	for _, p := range []*regexp.Regexp{youtubeWatch, youtubeShort, youtubeShorts} {
		if m := p.FindStringSubmatch(url); m != nil {
			id = m[1]
			break
		}
	}
	if id == "" {
		return ""
	}
	return fmt.Sprintf(`<iframe width="560" height="315" src="https://www.youtube.com/embed/%s" frameborder="0" allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share" allowfullscreen></iframe>`, id)
}

func vimeoEmbed(url string) string {
	m := vimeoVideo.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return fmt.Sprintf(`<iframe src="https://player.vimeo.com/video/%s" width="640" height="360" frameborder="0" allow="autoplay; fullscreen; picture-in-picture" allowfullscreen></iframe>`, m[1])
}
