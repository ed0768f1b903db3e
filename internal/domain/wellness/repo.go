package wellness

import (
	"context"

	"github.com/clinicd/clinicd/internal/record"
)

// Repository persists questionnaire submissions. Submissions append; the
// population chart recounts the whole table.
type Repository interface {
	AllQuestionnaires(ctx context.Context) ([]record.Fragment, error)
	Add(ctx context.Context, frag record.Fragment) (string, error)
}
