package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/event-timekeeper/backend/internal/storage/models"
)

// Settings table keys. The three timestamps are one JSON value; provenance
// is two independent scalar entries, mirroring how the display client
// originally persisted them.
const (
	keyTimeSettings = "time_settings"
	keySource       = "setting_source"
	keyManualDate   = "manual_setting_date"
	keyHeaderText   = "header_text"
)

// SettingsRepository persists the countdown time settings, their provenance,
// and the display title in the key-value settings table.
type SettingsRepository struct {
	BaseRepository
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Settings retrieves the persisted time settings. A missing key returns
// (nil, nil); an unparsable value is treated as absent and logged, never
// surfaced to the caller as an error.
func (r *SettingsRepository) Settings(ctx context.Context) (*models.TimeSettings, error) {
	raw, err := r.get(ctx, keyTimeSettings)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var settings models.TimeSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		log.Printf("Ignoring corrupt time settings value: %v", err)
		return nil, nil
	}
	if !settings.Valid() {
		log.Printf("Ignoring incomplete time settings value")
		return nil, nil
	}

	return &settings, nil
}

// SaveSettings persists the time settings as a single JSON record. It is a
// no-op unless both start and end timestamps are present.
func (r *SettingsRepository) SaveSettings(ctx context.Context, settings models.TimeSettings) error {
	if !settings.Valid() {
		return nil
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding time settings: %w", err)
	}

	return r.set(ctx, r.DB(), keyTimeSettings, string(raw))
}

// Provenance retrieves the setting provenance, or (nil, nil) when none is
// recorded.
func (r *SettingsRepository) Provenance(ctx context.Context) (*models.SettingProvenance, error) {
	source, err := r.get(ctx, keySource)
	if err != nil {
		return nil, err
	}
	if source == "" {
		return nil, nil
	}

	setDate, err := r.get(ctx, keyManualDate)
	if err != nil {
		return nil, err
	}

	return &models.SettingProvenance{Source: source, SetDate: setDate}, nil
}

// SaveProvenance records the setting provenance as two scalar entries.
func (r *SettingsRepository) SaveProvenance(ctx context.Context, p models.SettingProvenance) error {
	return r.Transaction(func(tx *sql.Tx) error {
		if err := r.set(ctx, tx, keySource, p.Source); err != nil {
			return err
		}
		return r.set(ctx, tx, keyManualDate, p.SetDate)
	})
}

// ClearAll removes the time settings and provenance together. The display
// title is left alone.
func (r *SettingsRepository) ClearAll(ctx context.Context) error {
	return r.Transaction(func(tx *sql.Tx) error {
		for _, key := range []string{keyTimeSettings, keySource, keyManualDate} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key); err != nil {
				return fmt.Errorf("deleting %s: %w", key, err)
			}
		}
		return nil
	})
}

// Title retrieves the persisted display title, empty when unset.
func (r *SettingsRepository) Title(ctx context.Context) (string, error) {
	return r.get(ctx, keyHeaderText)
}

// SaveTitle persists the display title.
func (r *SettingsRepository) SaveTitle(ctx context.Context, title string) error {
	return r.set(ctx, r.DB(), keyHeaderText, title)
}

// get reads a single settings value, returning "" when the key is absent.
func (r *SettingsRepository) get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.DB().QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying setting %s: %w", key, err)
	}
	return value, nil
}

func (r *SettingsRepository) set(ctx context.Context, q Queryable, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("storing setting %s: %w", key, err)
	}
	return nil
}
