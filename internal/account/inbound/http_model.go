package inbound

import "net/http"

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Scheme   string `json:"scheme,omitempty"`
}

// SignupResponse never carries the digest or salt.
type SignupResponse struct {
	Username string `json:"username"`
	Scheme   string `json:"scheme"`
}

func (SignupResponse) StatusCode() int {
	return http.StatusCreated
}

func (SignupResponse) Message() string {
	return "Account enrolled"
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Username string `json:"username"`
}

func (LoginResponse) Message() string {
	return "Login successful"
}

type SchemesResponse struct {
	Schemes []string `json:"schemes"`
	Default string   `json:"default"`
}
