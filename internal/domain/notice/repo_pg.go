package notice

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

func (r *repoPG) ListFor(ctx context.Context, username, recipientType string) ([]record.Fragment, error) {
	t := record.Notice
	rows, err := r.gw.Query(ctx,
		`SELECT `+t.SelectList()+` FROM `+t.Name+
			` WHERE recipient_type = 'admin' OR (username = $1 AND recipient_type = $2)`,
		username, recipientType)
	if err != nil {
		return nil, err
	}
	return t.Decode(rows), nil
}

func (r *repoPG) Add(ctx context.Context, frag record.Fragment) (string, error) {
	return r.gw.Upsert(ctx, record.Notice, frag)
}
