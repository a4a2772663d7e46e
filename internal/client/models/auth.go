package models

// Credentials is the POST /auth/login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the POST /auth/register payload. Language is the
// client's current preference, sent as a hint for the new account.
type Registration struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Language Language `json:"language"`
}

// AuthResponse is the body of a successful login or registration.
//
// The contract field for the bearer token is "token". Older backend builds
// sent "access_token" instead; it is still read, see BearerToken.
type AuthResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token,omitempty"`
	User        *User  `json:"user"`
}

// BearerToken returns the token and whether it came from the legacy
// access_token field. An empty token means the response carried neither.
func (r AuthResponse) BearerToken() (token string, legacy bool) {
	if r.Token != "" {
		return r.Token, false
	}
	if r.AccessToken != "" {
		return r.AccessToken, true
	}
	return "", false
}
