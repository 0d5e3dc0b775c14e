package db

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/emasjid/gateway/internal/model"
)

// UpsertUnavailability records a contact as unavailable for one slot on one
// date. Repeating the same request overwrites the reason and touches
// updated_at; the (contact_id, date, slot) key stays unique.
func (s *pgStore) UpsertUnavailability(contactID int, date time.Time, slot string, reason *string) error {
	_, err := s.db.Exec(`
		INSERT INTO availability_records (contact_id, date, slot, is_available, reason, created_at, updated_at)
		VALUES ($1, $2, $3, FALSE, $4, now(), now())
		ON CONFLICT (contact_id, date, slot)
		DO UPDATE SET is_available = FALSE,
		reason = EXCLUDED.reason,
		updated_at = now()
		`, contactID, date, slot, reason)
	if err != nil {
		log.Error().Err(err).
			Int("contact_id", contactID).
			Str("slot", slot).
			Msg("failed to upsert availability record")
	}
	return err
}

// DeleteUnavailability removes the unavailability record for the key if one
// exists and reports whether a row was actually deleted.
func (s *pgStore) DeleteUnavailability(contactID int, date time.Time, slot string) (bool, error) {
	res, err := s.db.Exec(`
		DELETE FROM availability_records
		WHERE contact_id = $1 AND date = $2 AND slot = $3 AND is_available = FALSE
		`, contactID, date, slot)
	if err != nil {
		log.Error().Err(err).
			Int("contact_id", contactID).
			Str("slot", slot).
			Msg("failed to delete availability record")
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListUnavailability returns upcoming unavailability rows ordered by date,
// then by the canonical slot order within a date.
func (s *pgStore) ListUnavailability(contactID int, from time.Time, limit int) ([]model.AvailabilityRecord, error) {
	var records []model.AvailabilityRecord
	err := s.db.Select(&records, `
		SELECT id, contact_id, date, slot, is_available, reason, created_at, updated_at
		FROM availability_records
		WHERE contact_id = $1 AND date >= $2 AND is_available = FALSE
		ORDER BY date,
		CASE slot
			WHEN 'Subuh' THEN 0
			WHEN 'Zohor' THEN 1
			WHEN 'Asar' THEN 2
			WHEN 'Maghrib' THEN 3
			WHEN 'Isyak' THEN 4
		END
		LIMIT $3
		`, contactID, from, limit)
	if err != nil {
		log.Error().Err(err).Int("contact_id", contactID).Msg("failed to list availability records")
		return nil, err
	}
	return records, nil
}
