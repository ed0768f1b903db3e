package wellness

import (
	"context"
	"strings"
	"testing"

	"github.com/clinicd/clinicd/internal/record"
)

type fakeRepo struct {
	questionnaires []record.Fragment
}

func (f *fakeRepo) AllQuestionnaires(context.Context) ([]record.Fragment, error) {
	return f.questionnaires, nil
}

func (f *fakeRepo) Add(_ context.Context, frag record.Fragment) (string, error) {
	if _, missing := record.Question.Row(frag); missing != "" {
		return missing, nil
	}
	f.questionnaires = append(f.questionnaires, frag)
	return "successful", nil
}

func questionnaire(height, weight, heart, pressure, lung string) record.Fragment {
	return record.Fragment{
		"name": "bao", "gender": "male", "age": "30",
		"height": height, "weight": weight, "heart": heart,
		"pressure": pressure, "lung": lung,
	}
}

func TestScore_AllHealthy(t *testing.T) {
	frag := questionnaire("170", "65", "70", "120", "3500")
	if got := Score(frag); got != 31 {
		t.Errorf("expected full score 31, got %d", got)
	}
}

func TestScore_Boundaries(t *testing.T) {
	cases := []struct {
		frag record.Fragment
		want int
	}{
		{questionnaire("100", "30", "50", "50", "1000"), 31},
		{questionnaire("300", "130", "250", "200", "9999"), 31},
		{questionnaire("99", "65", "70", "120", "3500"), 30},
		{questionnaire("170", "29", "70", "120", "3500"), 29},
		{questionnaire("170", "65", "251", "120", "3500"), 27},
		{questionnaire("170", "65", "70", "201", "3500"), 23},
		{questionnaire("170", "65", "70", "120", "999"), 15},
	}
	for i, c := range cases {
		if got := Score(c.frag); got != c.want {
			t.Errorf("case %d: expected score %d, got %d", i, c.want, got)
		}
	}
}

func TestVerdict(t *testing.T) {
	got := Verdict(31)
	want := "Normal height.;Normal weight.;Normal heart.;Normal pressure.;Normal lung.;"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	got = Verdict(0)
	if !strings.HasPrefix(got, "Abnormal height.;Abnormal weight.;") {
		t.Errorf("unexpected verdict: %q", got)
	}

	// only the weight bit set
	got = Verdict(2)
	want = "Abnormal height.;Normal weight.;Abnormal heart.;Abnormal pressure.;Abnormal lung.;"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSubmit(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	reply, verdict, err := svc.Submit(ctx, questionnaire("170", "65", "70", "120", "999"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "successful" {
		t.Errorf("expected successful, got %q", reply)
	}
	if !strings.Contains(verdict, "Abnormal lung.;") {
		t.Errorf("expected abnormal lung in verdict, got %q", verdict)
	}
	if len(repo.questionnaires) != 1 {
		t.Errorf("expected submission stored, got %d", len(repo.questionnaires))
	}
}

func TestSubmit_MissingFieldHasNoVerdict(t *testing.T) {
	svc := NewService(&fakeRepo{})

	frag := questionnaire("170", "65", "70", "120", "3500")
	delete(frag, "lung")
	reply, verdict, err := svc.Submit(context.Background(), frag)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "no [lung]" {
		t.Errorf("expected no [lung], got %q", reply)
	}
	if verdict != "" {
		t.Errorf("expected empty verdict, got %q", verdict)
	}
}

func TestChart(t *testing.T) {
	repo := &fakeRepo{questionnaires: []record.Fragment{
		questionnaire("170", "65", "70", "120", "3500"),
		questionnaire("99", "65", "70", "120", "3500"),
		questionnaire("99", "20", "70", "120", "500"),
	}}
	svc := NewService(repo)

	got, err := svc.Chart(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Total: 3.;Abnormal height: 2.;Abnormal weight: 1.;Abnormal heart: 0.;Abnormal pressure: 0.;Abnormal lung: 1.;"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestChart_Empty(t *testing.T) {
	svc := NewService(&fakeRepo{})
	got, err := svc.Chart(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Total: 0.;Abnormal height: 0.;Abnormal weight: 0.;Abnormal heart: 0.;Abnormal pressure: 0.;Abnormal lung: 0.;"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
