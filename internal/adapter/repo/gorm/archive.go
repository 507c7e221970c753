package gormrepo

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"nationsim/internal/adapter/repo/gorm/model"
	"nationsim/internal/domain/nation"
)

// ArchiveSink mirrors actions and events into postgres for offline
// analysis. Core game state never lives here.
type ArchiveSink struct {
	db *gorm.DB
}

func NewArchiveSink(db *gorm.DB) ArchiveSink {
	return ArchiveSink{db: db}
}

// Migrate creates the archive tables. Called once at startup when the sink
// is configured.
func (s ArchiveSink) Migrate() error {
	return s.db.AutoMigrate(&model.ActionRecord{}, &model.EventRecord{})
}

func (s ArchiveSink) ArchiveAction(ctx context.Context, a nation.Action) error {
	params, _ := json.Marshal(a.Params)
	row := model.ActionRecord{
		ActionID:    a.ID,
		NationID:    a.NationID,
		Type:        string(a.Type),
		Epoch:       a.Epoch,
		Params:      params,
		CreatedAt:   a.CreatedAt,
		ProcessedAt: a.ProcessedAt,
	}
	if a.Result != nil {
		row.Success = a.Result.Success
		row.Message = a.Result.Message
		if len(a.Result.Effects) > 0 {
			row.Effects, _ = json.Marshal(a.Result.Effects)
		}
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

func (s ArchiveSink) ArchiveEvents(ctx context.Context, events []nation.WorldEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.EventRecord, 0, len(events))
	for _, e := range events {
		var details []byte
		if len(e.Details) > 0 {
			details, _ = json.Marshal(e.Details)
		}
		rows = append(rows, model.EventRecord{
			EventID:        e.ID,
			Type:           string(e.Type),
			NationID:       e.NationID,
			TargetNationID: e.TargetNationID,
			RegionID:       e.RegionID,
			Message:        e.Message,
			Details:        details,
			OccurredAt:     e.Timestamp,
		})
	}
	return s.db.WithContext(ctx).Create(&rows).Error
}
