package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"remodel-portal/internal/logger"
	"remodel-portal/models"
)

// timelineRepository is the PostgreSQL-backed implementation of
// [TimelineRepository]. The timeline is a singleton document held in a named
// row (see [timelineRowID]); the row is created empty on the first read.
type timelineRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTimelineRepository constructs a [TimelineRepository] backed by the
// provided database connection and logger.
func NewTimelineRepository(db *DB, logger *logger.Logger) TimelineRepository {
	logger.Debug().Msg("creating timeline repository")
	return &timelineRepository{
		db:     db,
		logger: logger,
	}
}

// GetTimeline reads the singleton timeline row. When the row does not exist
// yet, an empty document is written and returned, so every caller observes
// an initialized timeline.
func (r *timelineRepository) GetTimeline(ctx context.Context) (models.Timeline, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getTimeline, timelineRowID)

	var phasesJSON []byte
	err := row.Scan(&phasesJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r.SaveTimeline(ctx, models.Timeline{Phases: []models.Phase{}})
		}
		log.Err(err).Str("func", "*timelineRepository.GetTimeline").Msg("error: scanning error")
		return models.Timeline{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	var timeline models.Timeline
	if err := json.Unmarshal(phasesJSON, &timeline.Phases); err != nil {
		log.Err(err).Str("func", "*timelineRepository.GetTimeline").Msg("failed to decode phases document")
		return models.Timeline{}, fmt.Errorf("%w: phases: %w", ErrDecodingDocument, err)
	}

	return timeline, nil
}

// SaveTimeline replaces the stored phase list wholesale and returns the
// post-image.
func (r *timelineRepository) SaveTimeline(ctx context.Context, timeline models.Timeline) (models.Timeline, error) {
	log := logger.FromContext(ctx)

	if timeline.Phases == nil {
		timeline.Phases = []models.Phase{}
	}

	phasesJSON, err := json.Marshal(timeline.Phases)
	if err != nil {
		log.Err(err).Str("func", "*timelineRepository.SaveTimeline").Msg("failed to encode phases document")
		return models.Timeline{}, fmt.Errorf("%w: phases: %w", ErrEncodingDocument, err)
	}

	row := r.db.QueryRowContext(ctx, upsertTimeline, timelineRowID, phasesJSON)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*timelineRepository.SaveTimeline").Msg("failed to upsert timeline")
		return models.Timeline{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	var savedJSON []byte
	if err := row.Scan(&savedJSON); err != nil {
		log.Err(err).Str("func", "*timelineRepository.SaveTimeline").Msg("error: scanning error")
		return models.Timeline{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	var saved models.Timeline
	if err := json.Unmarshal(savedJSON, &saved.Phases); err != nil {
		return models.Timeline{}, fmt.Errorf("%w: phases: %w", ErrDecodingDocument, err)
	}

	return saved, nil
}
