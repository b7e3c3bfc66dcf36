package model

// Author is a contributor profile loaded from content/authors/<id>.md.
type Author struct {
	ID       string
	Name     string
	Pronouns string
	Avatar   string
	Bio      string
	Mail     string
	Website  string
	Twitter  string
	GitHub   string
	LinkedIn string
	Discord  string
}

// AuthorRef is an author id from a post resolved for display. Unknown ids
// resolve with Registered=false and the raw id as Name.
type AuthorRef struct {
	ID         string
	Name       string
	Avatar     string
	Registered bool
	SocialLink string
}

type SocialLink struct {
	Href  string
	Label string
}
