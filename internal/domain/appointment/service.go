package appointment

import (
	"context"

	"github.com/clinicd/clinicd/internal/record"
)

// placeholder fills the clinical fields of the case and advice rows created
// at acceptance time, so the doctor-side editing screens always have a row
// to overwrite.
const placeholder = "unknown"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListAppointments(ctx context.Context, role, username string) ([]record.Fragment, error) {
	return s.repo.ListAppointments(ctx, role, username)
}

func (s *Service) ListCases(ctx context.Context, role, username string) ([]record.Fragment, error) {
	return s.repo.ListCases(ctx, role, username)
}

func (s *Service) ListAdvice(ctx context.Context, role, username string) ([]record.Fragment, error) {
	return s.repo.ListAdvice(ctx, role, username)
}

func (s *Service) SaveCase(ctx context.Context, frag record.Fragment) (string, error) {
	return s.repo.SaveCase(ctx, frag)
}

func (s *Service) SaveAdvice(ctx context.Context, frag record.Fragment) (string, error) {
	return s.repo.SaveAdvice(ctx, frag)
}

// Accept runs the appointment-acceptance fan-out. The server is
// authoritative for price: whatever cost the client sent is overwritten
// with the doctor's current cost. A case row and an advice row sharing the
// appointment's key are created (or re-created) with placeholder clinical
// fields, and the appointment itself is written last.
func (s *Service) Accept(ctx context.Context, frag record.Fragment) (string, error) {
	doctorUsername, ok := frag["doctorUsername"]
	if !ok {
		return "no [doctorUsername]", nil
	}

	cost, found, err := s.repo.DoctorCost(ctx, doctorUsername)
	if err != nil {
		return "", err
	}
	if !found {
		return "failed", nil
	}
	frag["cost"] = cost

	caseFrag := keyFields(frag)
	adviceFrag := keyFields(frag)
	fillPlaceholders(caseFrag, record.CaseRecord)
	fillPlaceholders(adviceFrag, record.Advice)

	// Incomplete keys surface through the appointment write below; the
	// derived rows share the same key fields.
	if _, err := s.repo.SaveCase(ctx, caseFrag); err != nil {
		return "", err
	}
	if _, err := s.repo.SaveAdvice(ctx, adviceFrag); err != nil {
		return "", err
	}
	return s.repo.SaveAppointment(ctx, frag)
}

// keyFields copies the four-field appointment key out of the fragment.
func keyFields(frag record.Fragment) record.Fragment {
	out := make(record.Fragment, len(record.Appointment.Columns))
	for _, c := range record.Appointment.Columns[:4] {
		if v, ok := frag[c.Wire]; ok {
			out[c.Wire] = v
		}
	}
	return out
}

// fillPlaceholders defaults every non-key field of the table.
func fillPlaceholders(frag record.Fragment, t record.Table) {
	for _, c := range t.Columns[4:] {
		frag[c.Wire] = placeholder
	}
}
