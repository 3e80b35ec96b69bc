package media

import "strings"

// imageExtensions lists the raster/vector formats the pipeline will upload.
var imageExtensions = []string{"jpg", "jpeg", "png", "gif", "webp", "svg", "bmp", "tiff", "tif", "ico"}

// resolverExtensions are tried when completing extension-less embed targets.
// This is a narrower list than imageExtensions on purpose: bare-name embeds
// in practice only ever point at common formats.
var resolverExtensions = []string{"png", "jpg", "jpeg", "gif", "webp", "svg", "bmp"}

var mimeTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"svg":  "image/svg+xml",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
	"tif":  "image/tiff",
	"ico":  "image/x-icon",
}

// IsImageExt reports whether ext (without leading dot) names a supported
// image format.
func IsImageExt(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range imageExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// ResolverExtensions returns the extensions tried during extension
// completion, in priority order.
func ResolverExtensions() []string {
	return resolverExtensions
}

// MIMEType maps an extension to its content type, defaulting to
// application/octet-stream for anything unknown.
func MIMEType(ext string) string {
	if mt, ok := mimeTypes[strings.ToLower(ext)]; ok {
		return mt
	}
	return "application/octet-stream"
}
