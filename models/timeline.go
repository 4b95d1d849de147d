package models

import (
	"sort"
	"time"
)

// PhaseStatus is the lifecycle state of a remodel phase.
type PhaseStatus string

const (
	PhaseNotStarted PhaseStatus = "Not Started"
	PhaseInProgress PhaseStatus = "In Progress"
	PhaseCompleted  PhaseStatus = "Completed"
	PhaseBlocked    PhaseStatus = "Blocked"
)

// Subtask is a check-listed sub-item of a phase. When a phase has at least
// one subtask and all of them are completed, the phase auto-completes on save.
type Subtask struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	Notes     string     `json:"notes,omitempty"`
	Learnings []Learning `json:"learnings,omitempty"`
	Images    []Image    `json:"images,omitempty"`
}

// Phase is a named stage of the remodel with its own status, dates, and
// nested tracking items. Order is unique within the timeline and is never
// renumbered on deletes.
type Phase struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Status      PhaseStatus `json:"status,omitempty"`
	StartDate   *time.Time  `json:"startDate,omitempty"`
	EndDate     *time.Time  `json:"endDate,omitempty"`
	Order       int         `json:"order"`
	Notes       string      `json:"notes,omitempty"`

	Learnings  []Learning  `json:"learnings,omitempty"`
	References []Reference `json:"references,omitempty"`
	Subtasks   []Subtask   `json:"subtasks,omitempty"`
	Images     []Image     `json:"images,omitempty"`

	// RelatedRooms lists slugs of rooms this phase touches.
	RelatedRooms []string `json:"relatedRooms,omitempty"`
}

// AllSubtasksCompleted reports whether the phase has at least one subtask and
// every one of them is completed.
func (p Phase) AllSubtasksCompleted() bool {
	if len(p.Subtasks) == 0 {
		return false
	}
	for _, st := range p.Subtasks {
		if !st.Completed {
			return false
		}
	}
	return true
}

// Timeline is the singleton ordered sequence of remodel phases.
type Timeline struct {
	Phases []Phase `json:"phases"`
}

// TableName returns the name of the database table
// associated with the Timeline model.
func (t Timeline) TableName() string {
	return "timeline"
}

// SortPhases orders phases by ascending Order. The sort is stable so phases
// sharing an order value keep their insertion position.
func (t *Timeline) SortPhases() {
	sort.SliceStable(t.Phases, func(i, j int) bool {
		return t.Phases[i].Order < t.Phases[j].Order
	})
}

// OverallProgress is the share of completed phases as an integer percentage,
// 0 for an empty timeline.
func (t Timeline) OverallProgress() int {
	if len(t.Phases) == 0 {
		return 0
	}

	completed := 0
	for _, p := range t.Phases {
		if p.Status == PhaseCompleted {
			completed++
		}
	}

	return int(float64(completed)/float64(len(t.Phases))*100 + 0.5)
}

// CurrentPhase returns the first In Progress phase, else the first Not
// Started phase, else nil. Phases are inspected in timeline order.
func (t Timeline) CurrentPhase() *Phase {
	for i := range t.Phases {
		if t.Phases[i].Status == PhaseInProgress {
			return &t.Phases[i]
		}
	}
	for i := range t.Phases {
		if t.Phases[i].Status == PhaseNotStarted {
			return &t.Phases[i]
		}
	}
	return nil
}

// TimelineView is the read shape of the timeline: stored phases plus the
// derived progress fields, computed fresh on every read.
type TimelineView struct {
	Phases          []Phase `json:"phases"`
	OverallProgress int     `json:"overall_progress"`
	CurrentPhase    *Phase  `json:"current_phase"`
}

// View derives the read shape from the stored timeline. Phases are assumed
// to be sorted already.
func (t Timeline) View() TimelineView {
	return TimelineView{
		Phases:          t.Phases,
		OverallProgress: t.OverallProgress(),
		CurrentPhase:    t.CurrentPhase(),
	}
}
