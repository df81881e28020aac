package comment

import "errors"

var (
	// ErrPostNotFound is returned when the commented post does not exist.
	ErrPostNotFound = errors.New("comment post not found")
	// ErrNotFound is returned when the referenced comment does not exist.
	ErrNotFound = errors.New("comment not found")
	// ErrGuestIdentityRequired is returned when an unauthenticated comment
	// carries no guest name/email.
	ErrGuestIdentityRequired = errors.New("guest name and email required")
)

// CreateCommentDTO is the body of a comment submission. Guests must fill
// AuthorName and AuthorEmail; signed-in users leave them empty.
type CreateCommentDTO struct {
	Content     string `json:"content" binding:"required"`
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
}
