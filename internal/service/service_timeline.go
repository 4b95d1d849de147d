package service

import (
	"context"
	"fmt"

	"remodel-portal/internal/logger"
	"remodel-portal/internal/store"
	"remodel-portal/internal/utils"
	"remodel-portal/models"
)

// timelineService is the concrete implementation of TimelineService. The
// timeline is a singleton document; every save replaces the phase list and
// every read returns it sorted with the derived progress fields attached.
type timelineService struct {
	timelineRepository store.TimelineRepository
	ids                *utils.UUIDGenerator
	logger             *logger.Logger
}

func NewTimelineService(timelineRepository store.TimelineRepository, ids *utils.UUIDGenerator, logger *logger.Logger) TimelineService {
	return &timelineService{
		timelineRepository: timelineRepository,
		ids:                ids,
		logger:             logger,
	}
}

func (t *timelineService) GetTimeline(ctx context.Context) (models.TimelineView, error) {
	timeline, err := t.timelineRepository.GetTimeline(ctx)
	if err != nil {
		return models.TimelineView{}, fmt.Errorf("timeline lookup failed: %w", err)
	}

	timeline.SortPhases()
	return timeline.View(), nil
}

// SaveTimeline validates and persists the submitted phase list.
//
// Phases and subtasks without an id get one assigned; blank phase statuses
// default to Not Started. Duplicate phase ids or order values, duplicate
// subtask ids within a phase, unknown statuses, and start dates after end
// dates are rejected with a *ValidationError. A phase whose subtasks are all
// completed (and there is at least one) is promoted to Completed before the
// save; unchecking a subtask later never demotes it.
func (t *timelineService) SaveTimeline(ctx context.Context, timeline models.Timeline) (models.TimelineView, error) {
	log := logger.FromContext(ctx)

	if err := t.prepareTimeline(&timeline); err != nil {
		log.Err(err).Msg("timeline failed validation")
		return models.TimelineView{}, err
	}

	saved, err := t.timelineRepository.SaveTimeline(ctx, timeline)
	if err != nil {
		log.Err(err).Int("phases", len(timeline.Phases)).Msg("timeline save ended with error")
		return models.TimelineView{}, fmt.Errorf("timeline save ended with error: %w", err)
	}

	saved.SortPhases()
	return saved.View(), nil
}

// DeletePhase removes one phase by id and persists the remainder. Order
// values of the surviving phases are left untouched, gaps included.
func (t *timelineService) DeletePhase(ctx context.Context, phaseID string) (models.TimelineView, error) {
	log := logger.FromContext(ctx)

	if phaseID == "" {
		return models.TimelineView{}, ErrInvalidDataProvided
	}

	timeline, err := t.timelineRepository.GetTimeline(ctx)
	if err != nil {
		return models.TimelineView{}, fmt.Errorf("timeline lookup failed: %w", err)
	}

	kept := timeline.Phases[:0]
	found := false
	for _, phase := range timeline.Phases {
		if phase.ID == phaseID {
			found = true
			continue
		}
		kept = append(kept, phase)
	}
	if !found {
		return models.TimelineView{}, fmt.Errorf("%w: %q", ErrPhaseNotFound, phaseID)
	}
	timeline.Phases = kept

	saved, err := t.timelineRepository.SaveTimeline(ctx, timeline)
	if err != nil {
		log.Err(err).Str("phase", phaseID).Msg("phase deletion ended with error")
		return models.TimelineView{}, fmt.Errorf("phase deletion ended with error: %w", err)
	}

	saved.SortPhases()
	return saved.View(), nil
}

// prepareTimeline normalizes the phase list in place and rejects structural
// inconsistencies.
func (t *timelineService) prepareTimeline(timeline *models.Timeline) error {
	maxOrder := 0
	for _, phase := range timeline.Phases {
		if phase.Order > maxOrder {
			maxOrder = phase.Order
		}
	}

	phaseIDs := make(map[string]bool, len(timeline.Phases))
	orders := make(map[int]bool, len(timeline.Phases))

	for i := range timeline.Phases {
		phase := &timeline.Phases[i]

		if phase.ID == "" {
			phase.ID = t.ids.Generate()
		}
		if phaseIDs[phase.ID] {
			return newValidationError(fmt.Sprintf("phases[%d].id", i), "duplicate phase id %q", phase.ID)
		}
		phaseIDs[phase.ID] = true

		if phase.Title == "" {
			return newValidationError(fmt.Sprintf("phases[%d].title", i), "must not be empty")
		}

		// a zero order means the client did not place the phase yet
		if phase.Order == 0 {
			maxOrder++
			phase.Order = maxOrder
		}
		if orders[phase.Order] {
			return newValidationError(fmt.Sprintf("phases[%d].order", i), "duplicate order %d", phase.Order)
		}
		orders[phase.Order] = true

		if phase.Status == "" {
			phase.Status = models.PhaseNotStarted
		}
		switch phase.Status {
		case models.PhaseNotStarted, models.PhaseInProgress, models.PhaseCompleted, models.PhaseBlocked:
		default:
			return newValidationError(fmt.Sprintf("phases[%d].status", i), "unknown status %q", phase.Status)
		}

		if phase.StartDate != nil && phase.EndDate != nil && phase.StartDate.After(*phase.EndDate) {
			return newValidationError(fmt.Sprintf("phases[%d].startDate", i), "must not be after endDate")
		}

		if err := t.prepareSubtasks(i, phase); err != nil {
			return err
		}
		t.assignPhaseIDs(phase)

		if phase.AllSubtasksCompleted() && phase.Status != models.PhaseCompleted {
			phase.Status = models.PhaseCompleted
		}
	}

	return nil
}

func (t *timelineService) prepareSubtasks(phaseIdx int, phase *models.Phase) error {
	subtaskIDs := make(map[string]bool, len(phase.Subtasks))
	for i := range phase.Subtasks {
		subtask := &phase.Subtasks[i]

		if subtask.ID == "" {
			subtask.ID = t.ids.Generate()
		}
		if subtaskIDs[subtask.ID] {
			return newValidationError(
				fmt.Sprintf("phases[%d].subtasks[%d].id", phaseIdx, i),
				"duplicate subtask id %q", subtask.ID,
			)
		}
		subtaskIDs[subtask.ID] = true

		if subtask.Title == "" {
			return newValidationError(
				fmt.Sprintf("phases[%d].subtasks[%d].title", phaseIdx, i),
				"must not be empty",
			)
		}

		for j := range subtask.Learnings {
			if subtask.Learnings[j].ID == "" {
				subtask.Learnings[j].ID = t.ids.Generate()
			}
		}
		for j := range subtask.Images {
			if subtask.Images[j].ID == "" {
				subtask.Images[j].ID = t.ids.Generate()
			}
		}
	}

	return nil
}

// assignPhaseIDs gives ids to the phase-level embedded entities submitted
// without one.
func (t *timelineService) assignPhaseIDs(phase *models.Phase) {
	for i := range phase.Learnings {
		if phase.Learnings[i].ID == "" {
			phase.Learnings[i].ID = t.ids.Generate()
		}
	}
	for i := range phase.References {
		if phase.References[i].ID == "" {
			phase.References[i].ID = t.ids.Generate()
		}
	}
	for i := range phase.Images {
		if phase.Images[i].ID == "" {
			phase.Images[i].ID = t.ids.Generate()
		}
	}
}
