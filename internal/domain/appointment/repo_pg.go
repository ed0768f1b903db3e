package appointment

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

func (r *repoPG) ListAppointments(ctx context.Context, role, username string) ([]record.Fragment, error) {
	return r.listBy(ctx, record.Appointment, role, username)
}

func (r *repoPG) ListCases(ctx context.Context, role, username string) ([]record.Fragment, error) {
	return r.listBy(ctx, record.CaseRecord, role, username)
}

func (r *repoPG) ListAdvice(ctx context.Context, role, username string) ([]record.Fragment, error) {
	return r.listBy(ctx, record.Advice, role, username)
}

// listBy selects by the role's username column. The role is mapped to a
// fixed column name, never interpolated from client input.
func (r *repoPG) listBy(ctx context.Context, t record.Table, role, username string) ([]record.Fragment, error) {
	column, ok := roleColumn(role)
	if !ok {
		return nil, nil
	}
	rows, err := r.gw.Query(ctx,
		`SELECT `+t.SelectList()+` FROM `+t.Name+` WHERE `+column+` = $1`, username)
	if err != nil {
		return nil, err
	}
	return t.Decode(rows), nil
}

func roleColumn(role string) (string, bool) {
	switch role {
	case "patient":
		return "patient_username", true
	case "doctor":
		return "doctor_username", true
	default:
		return "", false
	}
}

func (r *repoPG) SaveAppointment(ctx context.Context, frag record.Fragment) (string, error) {
	return r.gw.Upsert(ctx, record.Appointment, frag)
}

func (r *repoPG) SaveCase(ctx context.Context, frag record.Fragment) (string, error) {
	return r.gw.Upsert(ctx, record.CaseRecord, frag)
}

func (r *repoPG) SaveAdvice(ctx context.Context, frag record.Fragment) (string, error) {
	return r.gw.Upsert(ctx, record.Advice, frag)
}

func (r *repoPG) DoctorCost(ctx context.Context, username string) (string, bool, error) {
	rows, err := r.gw.Query(ctx,
		`SELECT cost FROM doctor_info WHERE username = $1`, username)
	if err != nil {
		return "", false, err
	}
	if len(rows) <= 1 || len(rows[1]) == 0 {
		return "", false, nil
	}
	return rows[1][0], true, nil
}
