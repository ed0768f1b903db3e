package notice

import (
	"context"

	"github.com/clinicd/clinicd/internal/record"
)

// Repository defines the persistence interface for notices.
type Repository interface {
	// ListFor returns admin-wide notices plus the notices addressed to the
	// given recipient.
	ListFor(ctx context.Context, username, recipientType string) ([]record.Fragment, error)
	Add(ctx context.Context, frag record.Fragment) (string, error)
}
