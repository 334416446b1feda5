package domain

// User is the identity checkout runs on behalf of. Authentication happens
// upstream, an empty ID stands for an anonymous visitor.
type User struct {
	ID string
}

func (u User) IsAuthenticated() bool {
	return u.ID != ""
}
