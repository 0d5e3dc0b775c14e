package db

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/emasjid/gateway/internal/model"
)

// FindActiveContactByAnyPhone matches one active contact whose stored phone
// equals any of the candidate representations. A miss returns (nil, nil):
// an unregistered sender is an expected outcome, not an error.
func (s *pgStore) FindActiveContactByAnyPhone(candidates []string) (*model.Contact, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	var c model.Contact
	err := s.db.Get(&c, `
		SELECT id, display_name, role, phone, active, created_at, updated_at
		FROM contacts
		WHERE active = TRUE AND phone = ANY($1)
		LIMIT 1
		`, pq.Array(candidates))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to look up contact by phone")
		return nil, err
	}
	return &c, nil
}

func (s *pgStore) FindContactsByRole(roles []model.Role) ([]model.Contact, error) {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	var contacts []model.Contact
	err := s.db.Select(&contacts, `
		SELECT id, display_name, role, phone, active, created_at, updated_at
		FROM contacts
		WHERE active = TRUE AND role = ANY($1)
		ORDER BY id
		`, pq.Array(names))
	if err != nil {
		log.Error().Err(err).Msg("failed to list contacts by role")
		return nil, err
	}
	return contacts, nil
}
