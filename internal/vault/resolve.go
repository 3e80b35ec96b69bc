package vault

import (
	"strings"

	"github.com/sapienskid/witch/internal/media"
)

// Resolve locates the file a link or embed target refers to. The ladder
// tolerates the forms the note format allows interchangeably: full path,
// path relative to the current note, bare name, and extension-less image
// names. Misses return nil; resolution never errors.
//
// Order, first match wins:
//  1. exact path in the index
//  2. link-path resolution relative to the current note
//  3. link-path resolution from the vault root
//  4. steps 1-2 retried with each known image extension appended
//  5. case-insensitive fallback: name match, then full-path match, then
//     substring-of-path match
func Resolve(g Graph, target string, current *File) *File {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil
	}

	if f, ok := g.ByPath(target); ok {
		return f
	}
	if current != nil {
		if f := g.ResolveLink(target, current.Path); f != nil {
			return f
		}
	}
	if f := g.ResolveLink(target, ""); f != nil {
		return f
	}

	for _, ext := range media.ResolverExtensions() {
		withExt := target + "." + ext
		if f, ok := g.ByPath(withExt); ok {
			return f
		}
		if current != nil {
			if f := g.ResolveLink(withExt, current.Path); f != nil {
				return f
			}
		}
	}

	lower := strings.ToLower(target)
	var pathMatch, substrMatch *File
	for _, f := range g.Files() {
		name := strings.ToLower(f.Name)
		p := strings.ToLower(f.Path)
		if name == lower {
			return f
		}
		if pathMatch == nil && p == lower {
			pathMatch = f
		}
		if substrMatch == nil && strings.Contains(p, lower) {
			substrMatch = f
		}
	}
	if pathMatch != nil {
		return pathMatch
	}
	return substrMatch
}
