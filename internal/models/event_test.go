package models

import (
	"testing"
	"time"
)

func TestDerivePhase(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := base.Add(8 * time.Hour)

	cases := []struct {
		name  string
		start time.Time
		end   *time.Time
		now   time.Time
		want  EventPhase
	}{
		{"before start", base, &end, base.Add(-time.Hour), PhaseUpcoming},
		{"inside window", base, &end, base.Add(time.Hour), PhaseOngoing},
		{"after end", base, &end, end.Add(time.Minute), PhaseCompleted},
		{"open-ended just started", base, nil, base.Add(2 * time.Hour), PhaseOngoing},
		{"open-ended day later", base, nil, base.Add(25 * time.Hour), PhaseCompleted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DerivePhase(tc.start, tc.end, tc.now); got != tc.want {
				t.Fatalf("DerivePhase = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEffectivePhaseAdminOverrideWins(t *testing.T) {
	ev := EventModel{StartDate: time.Now().Add(time.Hour), Phase: PhaseCanceled}
	if got := ev.EffectivePhase(time.Now()); got != PhaseCanceled {
		t.Fatalf("EffectivePhase = %q, want canceled", got)
	}

	ev.Phase = ""
	if got := ev.EffectivePhase(time.Now()); got != PhaseUpcoming {
		t.Fatalf("EffectivePhase without override = %q, want upcoming", got)
	}
}
