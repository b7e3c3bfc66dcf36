// Package slug derives post slugs from content paths and answers the
// one-level parent/sub-post questions the blog index is built on.
package slug

import (
	"path"
	"regexp"
	"strings"
)

// Separator splits a parent slug from a sub-post's local part.
const Separator = "/"

var documentExt = regexp.MustCompile(`\.(mdx?|md)$`)

// IsDocument reports whether name has a recognized document extension.
func IsDocument(name string) bool {
	return documentExt.MatchString(name)
}

// TrimExt removes a recognized document extension from name.
func TrimExt(name string) string {
	return documentExt.ReplaceAllString(name, "")
}

// FromPath derives a slug from a document path relative to the blog root.
//
//	my-post.md          -> my-post
//	my-post/index.mdx   -> my-post
//	my-post/day-1.md    -> my-post/day-1
//	my-post/sub/index.md -> my-post/sub
//
// The path must use forward slashes. An empty result means the file is the
// blog root index and has no slug.
func FromPath(rel string) string {
	parts := strings.Split(TrimExt(rel), Separator)
	if parts[len(parts)-1] == "index" {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, Separator)
}

// IsSubpost reports whether slug belongs to a parent post.
func IsSubpost(slug string) bool {
	return strings.Contains(slug, Separator)
}

// Parent returns the segment before the first separator. For a top-level
// slug it returns the slug itself.
func Parent(slug string) string {
	parent, _, _ := strings.Cut(slug, Separator)
	return parent
}

// Local returns everything after the first separator, so "a/b/c" yields
// "b/c". Top-level slugs have no local part.
func Local(slug string) string {
	_, local, _ := strings.Cut(slug, Separator)
	return local
}

// Valid reports whether slug is safe to map back onto the file system.
func Valid(slug string) bool {
	if slug == "" || strings.ContainsAny(slug, "\\\x00") {
		return false
	}
	for _, seg := range strings.Split(slug, Separator) {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return path.Clean(slug) == slug
}
