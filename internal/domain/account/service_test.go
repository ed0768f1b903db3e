package account

import (
	"context"
	"testing"

	"github.com/clinicd/clinicd/internal/record"
)

type fakeRepo struct {
	accounts  map[string]string // username|type -> reversed password
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{accounts: make(map[string]string)}
}

func (f *fakeRepo) key(username, accountType string) string {
	return username + "|" + accountType
}

func (f *fakeRepo) Exists(_ context.Context, username, accountType string) (bool, error) {
	_, ok := f.accounts[f.key(username, accountType)]
	return ok, nil
}

func (f *fakeRepo) PasswordMatches(_ context.Context, username, accountType, reversed string) (bool, error) {
	return f.accounts[f.key(username, accountType)] == reversed, nil
}

func (f *fakeRepo) Create(_ context.Context, frag record.Fragment) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.accounts[f.key(frag["username"], frag["type"])] = frag["reverse"]
	return "successful", nil
}

type fakeProfiles struct {
	patients map[string]record.Fragment
	doctors  map[string]record.Fragment
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{
		patients: make(map[string]record.Fragment),
		doctors:  make(map[string]record.Fragment),
	}
}

func (f *fakeProfiles) SavePatient(_ context.Context, frag record.Fragment) (string, error) {
	f.patients[frag["username"]] = frag
	return "successful", nil
}

func (f *fakeProfiles) SaveDoctor(_ context.Context, frag record.Fragment) (string, error) {
	f.doctors[frag["username"]] = frag
	return "successful", nil
}

func TestReverse(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"a", "a"},
		{"abc", "cba"},
		{"123456", "654321"},
	}
	for _, c := range cases {
		if got := Reverse(c.in); got != c.want {
			t.Errorf("Reverse(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestRegister_NewPatient(t *testing.T) {
	repo := newFakeRepo()
	profiles := newFakeProfiles()
	svc := NewService(repo, profiles)
	ctx := context.Background()

	reply, err := svc.Register(ctx, "alice", TypePatient, "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "successful" {
		t.Errorf("expected successful, got %q", reply)
	}

	if repo.accounts["alice|patient"] != "terces" {
		t.Errorf("expected reversed password stored, got %q", repo.accounts["alice|patient"])
	}

	p, ok := profiles.patients["alice"]
	if !ok {
		t.Fatal("expected default patient profile")
	}
	if p["name"] != "bao" || p["email"] != "bao@qingfeng.com" {
		t.Errorf("unexpected default profile: %v", p)
	}
}

func TestRegister_NewDoctor(t *testing.T) {
	repo := newFakeRepo()
	profiles := newFakeProfiles()
	svc := NewService(repo, profiles)

	reply, err := svc.Register(context.Background(), "dr", TypeDoctor, "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "successful" {
		t.Errorf("expected successful, got %q", reply)
	}

	d, ok := profiles.doctors["dr"]
	if !ok {
		t.Fatal("expected default doctor profile")
	}
	if d["begin"] != "0" || d["end"] != "24" || d["department"] != "unknown" {
		t.Errorf("unexpected default profile: %v", d)
	}
}

func TestRegister_Taken(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newFakeProfiles())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", TypePatient, "one"); err != nil {
		t.Fatal(err)
	}
	reply, err := svc.Register(ctx, "alice", TypePatient, "two")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "failed" {
		t.Errorf("expected failed, got %q", reply)
	}
}

func TestRegister_SameNameDifferentType(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newFakeProfiles())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", TypePatient, "pw"); err != nil {
		t.Fatal(err)
	}
	reply, err := svc.Register(ctx, "alice", TypeDoctor, "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "successful" {
		t.Errorf("expected successful for distinct type, got %q", reply)
	}
}

func TestRegister_AdminSkipsProfile(t *testing.T) {
	repo := newFakeRepo()
	profiles := newFakeProfiles()
	svc := NewService(repo, profiles)

	reply, err := svc.Register(context.Background(), "root", TypeAdmin, "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "successful" {
		t.Errorf("expected successful, got %q", reply)
	}
	if len(profiles.patients) != 0 || len(profiles.doctors) != 0 {
		t.Error("expected no profile rows for admin accounts")
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newFakeProfiles())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", TypePatient, "secret"); err != nil {
		t.Fatal(err)
	}

	reply, err := svc.Login(ctx, "alice", TypePatient, "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "successful" {
		t.Errorf("expected successful, got %q", reply)
	}

	reply, _ = svc.Login(ctx, "bob", TypePatient, "secret")
	if reply != "usernameWrong" {
		t.Errorf("expected usernameWrong, got %q", reply)
	}

	reply, _ = svc.Login(ctx, "alice", TypePatient, "wrong")
	if reply != "passwordWrong" {
		t.Errorf("expected passwordWrong, got %q", reply)
	}

	// right user, wrong account type counts as an unknown username
	reply, _ = svc.Login(ctx, "alice", TypeDoctor, "secret")
	if reply != "usernameWrong" {
		t.Errorf("expected usernameWrong for mismatched type, got %q", reply)
	}
}
