package wellness

import (
	"context"

	"github.com/clinicd/clinicd/internal/record"
	"github.com/clinicd/clinicd/internal/storage"
)

type repoPG struct {
	gw storage.Gateway
}

func NewRepo(gw storage.Gateway) Repository {
	return &repoPG{gw: gw}
}

func (r *repoPG) AllQuestionnaires(ctx context.Context) ([]record.Fragment, error) {
	t := record.Question
	rows, err := r.gw.Query(ctx, `SELECT `+t.SelectList()+` FROM `+t.Name)
	if err != nil {
		return nil, err
	}
	return t.Decode(rows), nil
}

func (r *repoPG) Add(ctx context.Context, frag record.Fragment) (string, error) {
	return r.gw.Upsert(ctx, record.Question, frag)
}
