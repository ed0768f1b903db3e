package profile

import (
	"context"

	"github.com/clinicd/clinicd/internal/record"
)

// Repository defines the persistence interface for patient and doctor
// profiles.
type Repository interface {
	GetPatient(ctx context.Context, username string) (record.Fragment, bool, error)
	GetDoctor(ctx context.Context, username string) (record.Fragment, bool, error)
	SavePatient(ctx context.Context, frag record.Fragment) (string, error)
	SaveDoctor(ctx context.Context, frag record.Fragment) (string, error)

	// ListPatients returns the patient roster as {username, name} pairs.
	ListPatients(ctx context.Context) ([]record.Fragment, error)

	// ListDoctors returns every doctor profile in full.
	ListDoctors(ctx context.Context) ([]record.Fragment, error)
}
