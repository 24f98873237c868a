package inbound

import (
	"context"

	"github.com/shandysiswandi/passlab/internal/account/entity"
	"github.com/shandysiswandi/passlab/internal/account/usecase"
	"github.com/shandysiswandi/passlab/internal/pkg/router"
)

type uc interface {
	Enroll(ctx context.Context, in usecase.EnrollInput) (*entity.UserCredential, error)
	Authenticate(ctx context.Context, in usecase.AuthenticateInput) (*entity.Account, error)
	Schemes(ctx context.Context) usecase.SchemesOutput
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/account/signup", end.Signup)
	r.POST("/api/v1/account/login", end.Login)
	r.GET("/api/v1/account/schemes", end.Schemes)
}
