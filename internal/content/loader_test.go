package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, body string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func post(title, date string, extra string) string {
	return "---\ntitle: " + title + "\ndate: " + date + "\n" + extra + "---\nBody of " + title + "\n"
}

func slugs(t *testing.T, l *Loader) []string {
	t.Helper()
	posts, err := l.Posts()
	require.NoError(t, err)
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Slug)
	}
	return out
}

func TestPosts_MissingContentRootIsEmpty(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "nope"), "/logo.png")
	posts, err := l.Posts()
	require.NoError(t, err)
	require.Empty(t, posts)
}

func TestPosts_SlugsFromPathsNewestFirst(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "blog/flat.md", post("Flat", "2024-01-01", ""))
	writeFile(t, root, "blog/folder/index.mdx", post("Folder", "2024-03-01", ""))
	writeFile(t, root, "blog/folder/part-1.md", post("Part 1", "2024-02-01", ""))
	writeFile(t, root, "blog/notes.txt", "not a document")
	writeFile(t, root, "blog/index.md", post("Root", "2024-05-01", ""))

	l := NewLoader(root, "/logo.png")
	require.Equal(t, []string{"folder", "folder/part-1", "flat"}, slugs(t, l))
}

func TestPosts_NormalizesFrontMatter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "blog/trip/day-1.md", `---
date: 2024-01-01
order: 2
image: /img/day1.png
tags: [japan, food, japan, ""]
authors: [alice, bob]
---
<Callout>Hello</Callout> there world
`)

	posts, err := NewLoader(root, "/logo.png").Posts()
	require.NoError(t, err)
	require.Len(t, posts, 1)

	p := posts[0]
	require.Equal(t, "trip/day-1", p.Slug)
	require.Equal(t, "trip", p.Parent)
	require.True(t, p.IsSubpost())
	require.Equal(t, "trip/day-1.md", p.Path)
	require.Equal(t, DefaultTitle, p.Title)
	require.Equal(t, "", p.Description)
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), p.Date)
	require.Equal(t, 2, p.Order)
	require.Equal(t, "/img/day1.png", p.Image)
	require.Equal(t, []string{"japan", "food"}, p.Tags)
	require.Equal(t, []string{"alice", "bob"}, p.AuthorIDs)
	require.Equal(t, 3, p.WordCount)
	require.NotContains(t, p.Body, "date:")
}

func TestPosts_DraftsExcluded(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "blog/live.md", post("Live", "2024-01-01", ""))
	writeFile(t, root, "blog/wip.md", post("WIP", "2024-02-01", "draft: true\n"))

	require.Equal(t, []string{"live"}, slugs(t, NewLoader(root, "")))
}

func TestPosts_ByteOrderMarkKeepsFrontMatter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "blog/bom.md", "\ufeff"+post("With BOM", "2024-03-01", "tags: [rail]\n"))
	writeFile(t, root, "blog/bom-draft.md", "\ufeff"+post("Hidden", "2024-03-02", "draft: true\n"))

	posts, err := NewLoader(root, "").Posts()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "With BOM", posts[0].Title)
	require.Equal(t, []string{"rail"}, posts[0].Tags)
	require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), posts[0].Date)
	require.NotContains(t, posts[0].Body, "title:")
}

func TestPosts_MissingDateSortsLast(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "blog/a.md", "---\ntitle: A\n---\nbody\n")
	writeFile(t, root, "blog/b.md", post("B", "2020-01-01", ""))

	require.Equal(t, []string{"b", "a"}, slugs(t, NewLoader(root, "")))
}

func TestPosts_NoFrontMatterUsesDefaults(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "blog/plain.md", "# Just markdown\n")

	posts, err := NewLoader(root, "").Posts()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, DefaultTitle, posts[0].Title)
	require.True(t, posts[0].Date.IsZero())
}

func TestPosts_MalformedFrontMatterIsFatal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "blog/good.md", post("Good", "2024-01-01", ""))
	bad := writeFile(t, root, "blog/bad.md", "---\ntitle: [unclosed\n---\nbody\n")

	_, err := NewLoader(root, "").Posts()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMalformedFrontMatter))

	var docErr *DocumentError
	require.True(t, errors.As(err, &docErr))
	require.Equal(t, bad, docErr.Path)
}

func TestPosts_UnterminatedFrontMatterIsFatal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "blog/bad.md", "---\ntitle: Oops\nbody\n")

	_, err := NewLoader(root, "").Posts()
	require.True(t, errors.Is(err, ErrMalformedFrontMatter))
}

func TestPosts_InvalidDateIsFatal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "blog/bad.md", post("Bad", "someday", ""))

	_, err := NewLoader(root, "").Posts()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidDate))
	require.Contains(t, err.Error(), "bad.md")
}

func TestPosts_DuplicateSlugNamesBothFiles(t *testing.T) {
	root := t.TempDir()
	first := writeFile(t, root, "blog/same.md", post("One", "2024-01-01", ""))
	second := writeFile(t, root, "blog/same/index.md", post("Two", "2024-01-02", ""))

	_, err := NewLoader(root, "").Posts()
	require.True(t, errors.Is(err, ErrDuplicateSlug))

	var docErr *DocumentError
	require.True(t, errors.As(err, &docErr))
	require.ElementsMatch(t, []string{first, second}, []string{docErr.Path, docErr.OtherPath})
}

func TestPosts_DuplicateSlugWithDraftStillFails(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "blog/same.md", post("One", "2024-01-01", ""))
	writeFile(t, root, "blog/same.mdx", post("Two", "2024-01-02", "draft: true\n"))

	_, err := NewLoader(root, "").Posts()
	require.True(t, errors.Is(err, ErrDuplicateSlug))
}

func TestRawContent_Precedence(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "blog/a/index.md", "index-md")
	writeFile(t, root, "blog/a.mdx", "flat-mdx")
	writeFile(t, root, "blog/a.md", "flat-md")
	writeFile(t, root, "blog/b.md", "only-md")
	writeFile(t, root, "blog/trip/day-1.md", "day one")

	l := NewLoader(root, "")

	got, err := l.RawContent("a")
	require.NoError(t, err)
	require.Equal(t, "index-md", string(got))

	writeFile(t, root, "blog/a/index.mdx", "index-mdx")
	got, err = l.RawContent("a")
	require.NoError(t, err)
	require.Equal(t, "index-mdx", string(got))

	got, err = l.RawContent("b")
	require.NoError(t, err)
	require.Equal(t, "only-md", string(got))

	got, err = l.RawContent("trip/day-1")
	require.NoError(t, err)
	require.Equal(t, "day one", string(got))
}

func TestRawContent_NotFound(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "secret.md", "outside the blog")

	l := NewLoader(root, "")
	for _, s := range []string{"missing", "../secret", "", "a//b"} {
		_, err := l.RawContent(s)
		require.ErrorIs(t, err, ErrNotFound, s)
	}
}
