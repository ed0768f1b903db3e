package appointment

import (
	"context"

	"github.com/clinicd/clinicd/internal/record"
)

// Repository defines the persistence interface for appointments and the
// case and advice records derived from them.
type Repository interface {
	// The list methods select rows by the requester's role-specific
	// username column; role is "patient" or "doctor".
	ListAppointments(ctx context.Context, role, username string) ([]record.Fragment, error)
	ListCases(ctx context.Context, role, username string) ([]record.Fragment, error)
	ListAdvice(ctx context.Context, role, username string) ([]record.Fragment, error)

	SaveAppointment(ctx context.Context, frag record.Fragment) (string, error)
	SaveCase(ctx context.Context, frag record.Fragment) (string, error)
	SaveAdvice(ctx context.Context, frag record.Fragment) (string, error)

	// DoctorCost returns the doctor's current consultation cost.
	DoctorCost(ctx context.Context, username string) (string, bool, error)
}
