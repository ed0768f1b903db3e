package attendance

import (
	"context"

	"github.com/clinicd/clinicd/internal/record"
)

// Repository persists raw work entries. Entries append; aggregation over
// duplicates happens in the service.
type Repository interface {
	WorkEntries(ctx context.Context, username string) ([]record.Fragment, error)
	Add(ctx context.Context, frag record.Fragment) (string, error)
}
