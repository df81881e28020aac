package models

// CommentModel is a comment on a post. Comments are created unapproved
// and stay invisible to public readers until a moderator approves them.
type CommentModel struct {
	Base
	PostID  string     `json:"post_id"  gorm:"index;not null"`
	Post    *PostModel `json:"post,omitempty" gorm:"foreignKey:PostID"`
	Content string     `json:"content"  gorm:"type:text;not null"`

	// Either a signed-in user or a guest identity.
	UserID      *string    `json:"user_id" gorm:"index"`
	User        *UserModel `json:"user,omitempty" gorm:"foreignKey:UserID"`
	AuthorName  string     `json:"author_name"`
	AuthorEmail string     `json:"author_email"`

	Approved bool `json:"approved" gorm:"default:false;index"`
}

func (CommentModel) TableName() string { return "comments" }

// AuthorDisplay is the name notification messages use for the commenter.
func (c CommentModel) AuthorDisplay() string {
	if c.User != nil {
		return c.User.DisplayName()
	}
	return c.AuthorName
}
