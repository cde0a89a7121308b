package models

// Session is the explicit session context passed to every gateway-calling
// component. Token is the backend bearer credential; it is treated as
// immutable for the duration of a request.
type Session struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	CreatedAt int64  `json:"createdAt"`
}

// Authenticated reports whether the session carries a backend token.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}
