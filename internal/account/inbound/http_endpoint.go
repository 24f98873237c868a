package inbound

import (
	"github.com/shandysiswandi/passlab/internal/account/usecase"
	"github.com/shandysiswandi/passlab/internal/pkg/goerror"
	"github.com/shandysiswandi/passlab/internal/pkg/router"
)

// errInvalidCredential is shared by unknown users and wrong passwords.
var errInvalidCredential = goerror.NewBusiness("invalid username or password", goerror.CodeUnauthorized)

// HTTPEndpoint exposes enrollment and login over HTTP.
type HTTPEndpoint struct {
	uc uc
}

// Signup enrolls a user under the requested or default scheme.
// @Summary Enroll account
// @Tags Account
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup payload"
// @Success 201 {object} router.successResponse{data=SignupResponse}
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 503 {object} router.errorResponse "Store unavailable"
// @Router /api/v1/account/signup [post]
func (h *HTTPEndpoint) Signup(r *router.Request) (any, error) {
	var req SignupRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	rec, err := h.uc.Enroll(r.Context(), usecase.EnrollInput{
		Username: req.Username,
		Password: req.Password,
		Scheme:   req.Scheme,
	})
	if err != nil {
		return nil, err
	}

	return SignupResponse{Username: rec.Username, Scheme: rec.Scheme}, nil
}

// Login checks a username and password.
// @Summary Authenticate account
// @Tags Account
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse}
// @Failure 401 {object} router.errorResponse "Invalid username or password"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 503 {object} router.errorResponse "Store unavailable"
// @Router /api/v1/account/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	acc, err := h.uc.Authenticate(r.Context(), usecase.AuthenticateInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, errInvalidCredential
	}

	return LoginResponse{Username: acc.Username}, nil
}

func (h *HTTPEndpoint) Schemes(r *router.Request) (any, error) {
	out := h.uc.Schemes(r.Context())
	return SchemesResponse{Schemes: out.Names, Default: out.Default}, nil
}
