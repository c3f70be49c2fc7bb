package repository

import (
	"context"

	"clip-summarize/internal/domain/entity"
)

// SettingsRepository persists user settings.
type SettingsRepository interface {
	Load(ctx context.Context) (entity.Settings, error)
	Save(ctx context.Context, s entity.Settings) error
}
