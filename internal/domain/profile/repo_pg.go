package profile

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

func (r *repoPG) GetPatient(ctx context.Context, username string) (record.Fragment, bool, error) {
	return r.getOne(ctx, record.PatientInfo, username)
}

func (r *repoPG) GetDoctor(ctx context.Context, username string) (record.Fragment, bool, error) {
	return r.getOne(ctx, record.DoctorInfo, username)
}

func (r *repoPG) getOne(ctx context.Context, t record.Table, username string) (record.Fragment, bool, error) {
	rows, err := r.gw.Query(ctx,
		`SELECT `+t.SelectList()+` FROM `+t.Name+` WHERE username = $1`, username)
	if err != nil {
		return nil, false, err
	}
	frags := t.Decode(rows)
	if len(frags) == 0 {
		return nil, false, nil
	}
	return frags[0], true, nil
}

func (r *repoPG) SavePatient(ctx context.Context, frag record.Fragment) (string, error) {
	return r.gw.Upsert(ctx, record.PatientInfo, frag)
}

func (r *repoPG) SaveDoctor(ctx context.Context, frag record.Fragment) (string, error) {
	return r.gw.Upsert(ctx, record.DoctorInfo, frag)
}

func (r *repoPG) ListPatients(ctx context.Context) ([]record.Fragment, error) {
	rows, err := r.gw.Query(ctx, `
		SELECT a.username, p.name
		FROM account a
		INNER JOIN patient_info p ON a.username = p.username
		WHERE a.account_type = 'patient'`)
	if err != nil {
		return nil, err
	}
	return record.NameList.Decode(rows), nil
}

func (r *repoPG) ListDoctors(ctx context.Context) ([]record.Fragment, error) {
	t := record.DoctorInfo
	rows, err := r.gw.Query(ctx, `SELECT `+t.SelectList()+` FROM `+t.Name)
	if err != nil {
		return nil, err
	}
	return t.Decode(rows), nil
}
