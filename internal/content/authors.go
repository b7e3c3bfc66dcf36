package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/unchartedsh/site/internal/frontmatter"
	"github.com/unchartedsh/site/internal/model"
	"github.com/unchartedsh/site/internal/slug"
)

type authorFrontMatter struct {
	Name     string `yaml:"name"`
	Pronouns string `yaml:"pronouns"`
	Avatar   string `yaml:"avatar"`
	Bio      string `yaml:"bio"`
	Mail     string `yaml:"mail"`
	Website  string `yaml:"website"`
	Twitter  string `yaml:"twitter"`
	GitHub   string `yaml:"github"`
	LinkedIn string `yaml:"linkedin"`
	Discord  string `yaml:"discord"`
}

// Authors reads every profile in the authors directory. The id is the file
// name without its extension; two files with the same id fail the load.
func (l *Loader) Authors() ([]*model.Author, error) {
	dir := l.AuthorsPath()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*model.Author{}, nil
		}
		return nil, fmt.Errorf("read authors directory: %w", err)
	}

	authors := make([]*model.Author, 0, len(entries))
	claimed := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !slug.IsDocument(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		id := slug.TrimExt(entry.Name())
		if other, ok := claimed[id]; ok {
			return nil, &DocumentError{Path: path, OtherPath: other, Err: fmt.Errorf("%w %q", ErrDuplicateAuthor, id)}
		}
		claimed[id] = path

		author, err := l.loadAuthor(path, id)
		if err != nil {
			return nil, err
		}
		authors = append(authors, author)
	}
	return authors, nil
}

func (l *Loader) loadAuthor(path, id string) (*model.Author, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	fm, _, _, err := frontmatter.Split(raw)
	if err != nil {
		return nil, &DocumentError{Path: path, Err: fmt.Errorf("%w: %w", ErrMalformedFrontMatter, err)}
	}

	var meta authorFrontMatter
	err = frontmatter.Decode(fm, &meta)
	if err != nil {
		return nil, &DocumentError{Path: path, Err: fmt.Errorf("%w: %w", ErrMalformedFrontMatter, err)}
	}

	author := &model.Author{
		ID:       id,
		Name:     strings.TrimSpace(meta.Name),
		Pronouns: meta.Pronouns,
		Avatar:   meta.Avatar,
		Bio:      meta.Bio,
		Mail:     meta.Mail,
		Website:  meta.Website,
		Twitter:  meta.Twitter,
		GitHub:   meta.GitHub,
		LinkedIn: meta.LinkedIn,
		Discord:  meta.Discord,
	}
	if author.Name == "" {
		author.Name = id
	}
	if author.Avatar == "" {
		author.Avatar = l.defaultAvatar
	}
	return author, nil
}
