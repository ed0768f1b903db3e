package account

import (
	"context"

	"github.com/clinicd/clinicd/internal/record"
)

// Repository defines the persistence interface for accounts.
type Repository interface {
	Exists(ctx context.Context, username, accountType string) (bool, error)
	PasswordMatches(ctx context.Context, username, accountType, reversed string) (bool, error)
	Create(ctx context.Context, frag record.Fragment) (string, error)
}

// ProfileInitializer creates the default profile row that registration
// attaches to a new patient or doctor account. Satisfied by the profile
// service.
type ProfileInitializer interface {
	SavePatient(ctx context.Context, frag record.Fragment) (string, error)
	SaveDoctor(ctx context.Context, frag record.Fragment) (string, error)
}
