package models

type PostID int

type Post struct {
	Id           PostID `json:"id" bson:"id"`
	Title        string `json:"title" bson:"title"`
	Content      string `json:"content" bson:"content"`
	Author       string `json:"author" bson:"author"`
	DateCreated  string `json:"date_created" bson:"date_created"`
	DateModified string `json:"date_modified,omitempty" bson:"date_modified,omitempty"`
}

// Field returns the value of a text field by its JSON name.
func (p Post) Field(name string) (string, bool) {
	switch name {
	case FieldTitle:
		return p.Title, true
	case FieldContent:
		return p.Content, true
	case FieldAuthor:
		return p.Author, true
	case FieldDateCreated:
		return p.DateCreated, true
	}
	return "", false
}
