package content

import (
	"errors"
	"fmt"

	"github.com/unchartedsh/site/internal/frontmatter"
)

var (
	ErrNotFound             = errors.New("content not found")
	ErrMalformedFrontMatter = errors.New("malformed front-matter")
	ErrInvalidDate          = frontmatter.ErrInvalidDate
	ErrDuplicateSlug        = errors.New("duplicate slug")
	ErrDuplicateAuthor      = errors.New("duplicate author id")
)

// DocumentError ties a content failure to the file that caused it. For
// collisions OtherPath names the file that claimed the slug or id first.
type DocumentError struct {
	Path      string
	OtherPath string
	Err       error
}

func (e *DocumentError) Error() string {
	if e.OtherPath != "" {
		return fmt.Sprintf("%s (conflicts with %s): %v", e.Path, e.OtherPath, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}
