package profile

import (
	"context"

	"github.com/clinicd/clinicd/internal/record"
)

// AnyHour is the sentinel hour meaning "do not filter doctors by time".
const AnyHour = 25

type Service struct {
	profiles Repository
}

func NewService(profiles Repository) *Service {
	return &Service{profiles: profiles}
}

func (s *Service) GetPatient(ctx context.Context, username string) (record.Fragment, bool, error) {
	return s.profiles.GetPatient(ctx, username)
}

func (s *Service) GetDoctor(ctx context.Context, username string) (record.Fragment, bool, error) {
	return s.profiles.GetDoctor(ctx, username)
}

func (s *Service) SavePatient(ctx context.Context, frag record.Fragment) (string, error) {
	return s.profiles.SavePatient(ctx, frag)
}

func (s *Service) SaveDoctor(ctx context.Context, frag record.Fragment) (string, error) {
	return s.profiles.SaveDoctor(ctx, frag)
}

func (s *Service) ListPatients(ctx context.Context) ([]record.Fragment, error) {
	return s.profiles.ListPatients(ctx)
}

// ListDoctorsAt returns the doctors available at the given hour, or every
// doctor when hour is the AnyHour sentinel.
func (s *Service) ListDoctorsAt(ctx context.Context, hour int) ([]record.Fragment, error) {
	doctors, err := s.profiles.ListDoctors(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByHour(doctors, hour), nil
}

// FilterByHour keeps the doctors whose [begin, end] window contains hour.
// The sentinel passes everything through.
func FilterByHour(doctors []record.Fragment, hour int) []record.Fragment {
	if hour == AnyHour {
		return doctors
	}
	var out []record.Fragment
	for _, d := range doctors {
		begin := record.Digits(d["begin"])
		end := record.Digits(d["end"])
		if begin <= hour && hour <= end {
			out = append(out, d)
		}
	}
	return out
}
