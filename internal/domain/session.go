package domain

// CurrentUser is the authenticated identity threaded through a request.
// It is also the value stored for a login session.
type CurrentUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
