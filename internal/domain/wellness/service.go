package wellness

import (
	"context"
	"strconv"
	"strings"

	"github.com/clinicd/clinicd/internal/record"
)

// metrics are the five measured questionnaire fields, in score-bit order.
var metrics = [...]string{"height", "weight", "heart", "pressure", "lung"}

// bounds holds the inclusive healthy range per metric, same order as
// metrics. Height is in centimeters, weight in kilograms, lung capacity in
// milliliters.
var bounds = [...][2]int{
	{100, 300},
	{30, 130},
	{50, 250},
	{50, 200},
	{1000, 9999},
}

// Score computes the health bitmask of one submission. Bit i is set when
// metric i falls inside its healthy range, so a fully healthy submission
// scores 31.
func Score(frag record.Fragment) int {
	score := 0
	for i, m := range metrics {
		v := record.Digits(frag[m])
		if bounds[i][0] <= v && v <= bounds[i][1] {
			score |= 1 << i
		}
	}
	return score
}

// Verdict renders a score as the per-metric result text shown to the
// patient after submitting.
func Verdict(score int) string {
	var b strings.Builder
	for i, m := range metrics {
		if score>>i&1 == 1 {
			b.WriteString("Normal ")
		} else {
			b.WriteString("Abnormal ")
		}
		b.WriteString(m)
		b.WriteString(".;")
	}
	return b.String()
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit stores a questionnaire and, when the row was complete, returns the
// per-metric verdict alongside the write reply. An incomplete row returns
// the "no [<field>]" reply with no verdict.
func (s *Service) Submit(ctx context.Context, frag record.Fragment) (reply, verdict string, err error) {
	reply, err = s.repo.Add(ctx, frag)
	if err != nil || strings.HasPrefix(reply, "no") {
		return reply, "", err
	}
	return reply, Verdict(Score(frag)), nil
}

// Chart counts submissions and, per metric, how many fell outside the
// healthy range.
func (s *Service) Chart(ctx context.Context) (string, error) {
	frags, err := s.repo.AllQuestionnaires(ctx)
	if err != nil {
		return "", err
	}

	var abnormal [len(metrics)]int
	for _, frag := range frags {
		score := Score(frag)
		for i := range metrics {
			if score>>i&1 == 0 {
				abnormal[i]++
			}
		}
	}

	var b strings.Builder
	b.WriteString("Total: ")
	b.WriteString(strconv.Itoa(len(frags)))
	b.WriteString(".;")
	for i, m := range metrics {
		b.WriteString("Abnormal ")
		b.WriteString(m)
		b.WriteString(": ")
		b.WriteString(strconv.Itoa(abnormal[i]))
		b.WriteString(".;")
	}
	return b.String(), nil
}
