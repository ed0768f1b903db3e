package account

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

func (r *repoPG) Exists(ctx context.Context, username, accountType string) (bool, error) {
	rows, err := r.gw.Query(ctx,
		`SELECT COUNT(*) FROM account WHERE username = $1 AND account_type = $2`,
		username, accountType)
	if err != nil {
		return false, err
	}
	return countPositive(rows), nil
}

func (r *repoPG) PasswordMatches(ctx context.Context, username, accountType, reversed string) (bool, error) {
	rows, err := r.gw.Query(ctx,
		`SELECT COUNT(*) FROM account WHERE username = $1 AND account_type = $2 AND password_reversed = $3`,
		username, accountType, reversed)
	if err != nil {
		return false, err
	}
	return countPositive(rows), nil
}

func (r *repoPG) Create(ctx context.Context, frag record.Fragment) (string, error) {
	return r.gw.Upsert(ctx, record.Account, frag)
}

func countPositive(rows storage.Rows) bool {
	return len(rows) > 1 && len(rows[1]) > 0 && rows[1][0] != "0"
}
