package models

import "time"

// EventKind separates one-off events from long-running initiatives.
type EventKind string

const (
	KindEvent      EventKind = "event"
	KindInitiative EventKind = "initiative"
)

func (k EventKind) Valid() bool { return k == KindEvent || k == KindInitiative }

// EventPhase is the temporal state of an event. It is admin-set;
// when unset it is derived from the scheduling window at read time.
type EventPhase string

const (
	PhaseUpcoming  EventPhase = "upcoming"
	PhaseOngoing   EventPhase = "ongoing"
	PhaseCompleted EventPhase = "completed"
	PhaseCanceled  EventPhase = "canceled"
)

func (p EventPhase) Valid() bool {
	switch p {
	case PhaseUpcoming, PhaseOngoing, PhaseCompleted, PhaseCanceled:
		return true
	}
	return false
}

// EventModel is an event or initiative with a scheduling window.
// Visibility follows the shared content lifecycle; Phase only reflects
// where the event sits in time.
type EventModel struct {
	ContentBase
	Kind         EventKind     `json:"kind"          gorm:"index;default:'event'"`
	StartDate    time.Time     `json:"start_date"    gorm:"index;not null"`
	EndDate      *time.Time    `json:"end_date,omitempty"`
	Location     string        `json:"location"`
	MeetingURL   string        `json:"meeting_url,omitempty"`
	MeetingID    string        `json:"meeting_id,omitempty"`
	Phase        EventPhase    `json:"phase,omitempty" gorm:"index"`
	ThumbnailURL string        `json:"thumbnail_url"`
	Author       *ProfileModel `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

func (EventModel) TableName() string { return "events" }

// EffectivePhase returns the stored phase, or one derived from the
// scheduling window when the admin has not set it.
func (e *EventModel) EffectivePhase(now time.Time) EventPhase {
	if e.Phase.Valid() {
		return e.Phase
	}
	return DerivePhase(e.StartDate, e.EndDate, now)
}

// DerivePhase computes the temporal phase from the scheduling window.
// Without an end date the event is considered completed once started
// for more than a day.
func DerivePhase(start time.Time, end *time.Time, now time.Time) EventPhase {
	if now.Before(start) {
		return PhaseUpcoming
	}
	if end != nil {
		if now.After(*end) {
			return PhaseCompleted
		}
		return PhaseOngoing
	}
	if now.After(start.Add(24 * time.Hour)) {
		return PhaseCompleted
	}
	return PhaseOngoing
}
