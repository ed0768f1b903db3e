package attendance

import (
	"context"
	"fmt"

	"github.com/clinicd/clinicd/internal/record"
)

const (
	StatusClock = "clock"
	StatusLeave = "leave"
)

// monthDays ignores leap years. February always reports 28 days.
var monthDays = [...]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysIn returns the day count of a month, or 0 when the month is out of
// range.
func DaysIn(month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	return monthDays[month]
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Mark appends one work entry with the given status. The username and date
// come from the caller's fragment; a missing field surfaces as the write
// reply.
func (s *Service) Mark(ctx context.Context, frag record.Fragment, status string) (string, error) {
	frag["status"] = status
	return s.repo.Add(ctx, frag)
}

// Report aggregates a staff member's entries for one month into the
// attendance summary line. The month must already be validated.
func (s *Service) Report(ctx context.Context, username string, month int) (string, error) {
	entries, err := s.repo.WorkEntries(ctx, username)
	if err != nil {
		return "", err
	}
	return Summarize(entries, month), nil
}

// Summarize reduces raw entries to the per-day strongest status and counts
// days. Dates are YYYYMMDD; the year is deliberately ignored, matching the
// one-year horizon the clients assume. A day with both a clock-in and a
// leave request counts as clocked.
func Summarize(entries []record.Fragment, month int) string {
	byDay := make(map[int]int)
	for _, e := range entries {
		date := record.Digits(e["date"])
		if date/100%100 != month {
			continue
		}
		w := 1
		if e["status"] == StatusClock {
			w = 2
		}
		if w > byDay[date%100] {
			byDay[date%100] = w
		}
	}

	clocked, leave := 0, 0
	total := DaysIn(month)
	for d := 1; d <= total; d++ {
		switch byDay[d] {
		case 2:
			clocked++
		case 1:
			leave++
		}
	}
	return fmt.Sprintf("clock %d day(s);leave %d day(s);absence %d day(s);",
		clocked, leave, total-clocked-leave)
}
