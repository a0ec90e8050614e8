package models

// Post is a blog record as stored by the content service
type Post struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Category    []string `json:"category" yaml:"category"`
	Description string   `json:"description" yaml:"description"`
	Date        string   `json:"date" yaml:"date"`
	CoverImage  string   `json:"coverImage" yaml:"coverImage"`
	Content     string   `json:"content" yaml:"content"`
}

// NewPost is the payload accepted to create a Post
type NewPost struct {
	Title       string   `json:"title" yaml:"title" validate:"required"`
	Category    []string `json:"category" yaml:"category"`
	Description string   `json:"description" yaml:"description" validate:"required"`
	Date        string   `json:"date" yaml:"date"`
	CoverImage  string   `json:"coverImage" yaml:"coverImage" validate:"required,uri"`
	Content     string   `json:"content" yaml:"content" validate:"required"`
}

// WithID builds the Post that a backend stores for this payload
func (n NewPost) WithID(id string) Post {
	return Post{
		ID:          id,
		Title:       n.Title,
		Category:    CloneCategory(n.Category),
		Description: n.Description,
		Date:        n.Date,
		CoverImage:  n.CoverImage,
		Content:     n.Content,
	}
}

// Clone returns a deep copy, category slice included
func (p Post) Clone() Post {
	p.Category = CloneCategory(p.Category)
	return p
}

// CloneCategory copies tags; nil becomes an empty slice so it encodes as []
func CloneCategory(category []string) []string {
	out := make([]string, len(category))
	copy(out, category)
	return out
}

// Cover is an uploaded cover image; URL goes into Post.CoverImage
type Cover struct {
	ObjectName string `json:"objectName" yaml:"objectName"`
	URL        string `json:"coverImage" yaml:"coverImage"`
}
