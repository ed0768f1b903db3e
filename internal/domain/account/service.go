package account

import (
	"context"

	"github.com/clinicd/clinicd/internal/record"
)

// Account types accepted on the wire.
const (
	TypePatient = "patient"
	TypeDoctor  = "doctor"
	TypeAdmin   = "admin"
)

type Service struct {
	accounts Repository
	profiles ProfileInitializer
}

func NewService(accounts Repository, profiles ProfileInitializer) *Service {
	return &Service{accounts: accounts, profiles: profiles}
}

// Register creates an account unless (username, type) is already taken, and
// seeds the default profile row for patient and doctor accounts so the
// profile screens always have something to load.
func (s *Service) Register(ctx context.Context, username, accountType, password string) (string, error) {
	taken, err := s.accounts.Exists(ctx, username, accountType)
	if err != nil {
		return "", err
	}
	if taken {
		return "failed", nil
	}

	if _, err := s.accounts.Create(ctx, record.Fragment{
		"username": username,
		"type":     accountType,
		"reverse":  Reverse(password),
	}); err != nil {
		return "", err
	}

	switch accountType {
	case TypePatient:
		if _, err := s.profiles.SavePatient(ctx, defaultPatientProfile(username)); err != nil {
			return "", err
		}
	case TypeDoctor:
		if _, err := s.profiles.SaveDoctor(ctx, defaultDoctorProfile(username)); err != nil {
			return "", err
		}
	}
	return "successful", nil
}

// Login checks account existence before the password so the client can
// distinguish a bad username from a bad password.
func (s *Service) Login(ctx context.Context, username, accountType, password string) (string, error) {
	known, err := s.accounts.Exists(ctx, username, accountType)
	if err != nil {
		return "", err
	}
	if !known {
		return "usernameWrong", nil
	}

	ok, err := s.accounts.PasswordMatches(ctx, username, accountType, Reverse(password))
	if err != nil {
		return "", err
	}
	if !ok {
		return "passwordWrong", nil
	}
	return "successful", nil
}

// Reverse is the stored password transform. It is reversible and offers no
// real protection; it is kept only for compatibility with existing account
// rows. Do not deploy this without replacing it with a proper hash.
func Reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// Default profile field values carried over from the legacy system.
func defaultPatientProfile(username string) record.Fragment {
	return record.Fragment{
		"username":    username,
		"name":        "bao",
		"gender":      "male",
		"birthday":    "19530615",
		"id":          "110108195306151437",
		"phoneNumber": "110",
		"email":       "bao@qingfeng.com",
	}
}

func defaultDoctorProfile(username string) record.Fragment {
	return record.Fragment{
		"username":   username,
		"name":       "bao",
		"id":         "110108195306151437",
		"department": "unknown",
		"cost":       "19530615",
		"begin":      "0",
		"end":        "24",
		"limit":      "201307",
	}
}
