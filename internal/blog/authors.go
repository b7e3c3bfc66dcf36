package blog

import (
	"github.com/unchartedsh/site/internal/model"
)

// Authors returns every loaded author profile in file order.
func (s *Snapshot) Authors() []*model.Author {
	return s.authors
}

func (s *Snapshot) Author(id string) (*model.Author, bool) {
	a, ok := s.authorByID[id]
	return a, ok
}

// ResolveAuthors maps author ids to display references in the order given.
// Unknown ids are never an error: they resolve to the raw id with the
// default avatar and Registered=false.
func (s *Snapshot) ResolveAuthors(ids []string) []model.AuthorRef {
	refs := make([]model.AuthorRef, 0, len(ids))
	for _, id := range ids {
		a, ok := s.authorByID[id]
		if !ok {
			refs = append(refs, model.AuthorRef{
				ID:     id,
				Name:   id,
				Avatar: s.defaultAvatar,
			})
			continue
		}

		avatar := a.Avatar
		if avatar == "" {
			avatar = s.defaultAvatar
		}
		refs = append(refs, model.AuthorRef{
			ID:         id,
			Name:       a.Name,
			Avatar:     avatar,
			Registered: true,
			SocialLink: a.LinkedIn,
		})
	}
	return refs
}

// SocialLinks lists the contact links an author has filled in.
func SocialLinks(a *model.Author) []model.SocialLink {
	if a == nil {
		return nil
	}
	var links []model.SocialLink
	add := func(href, label string) {
		if href != "" {
			links = append(links, model.SocialLink{Href: href, Label: label})
		}
	}
	add(a.Website, "Website")
	add(a.GitHub, "GitHub")
	add(a.Twitter, "Twitter")
	add(a.LinkedIn, "LinkedIn")
	if a.Mail != "" {
		add("mailto:"+a.Mail, "Email")
	}
	return links
}
