package usecase

import "context"

// FirebaseAuthClient is the slice of the auth infrastructure the usecases
// depend on.
type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	GenerateToken(ctx context.Context, uid string) (string, error)
	SignInWithEmailPassword(ctx context.Context, email, password string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
}
