// Package reminder broadcasts templated duty reminders for the next day's
// roster through the dispatcher.
package reminder

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/emasjid/gateway/internal/db"
	"github.com/emasjid/gateway/internal/dispatch"
	"github.com/emasjid/gateway/internal/model"
	"github.com/emasjid/gateway/internal/phone"
)

type Broadcaster struct {
	store      db.Store
	dispatcher *dispatch.Dispatcher
	templateID string
}

func NewBroadcaster(store db.Store, dispatcher *dispatch.Dispatcher, templateID string) *Broadcaster {
	return &Broadcaster{
		store:      store,
		dispatcher: dispatcher,
		templateID: templateID,
	}
}

// BroadcastFor sends one templated reminder to every contact assigned on
// the given date, grouping a contact's slots into a single message.
// Reminders go out as template sends: there is no conversation window open
// with a contact who hasn't messaged first. Delivery is sequential through
// the dispatcher and per-recipient failures are reported, not retried.
func (b *Broadcaster) BroadcastFor(date model.CalendarDate) ([]dispatch.Result, error) {
	assignments, err := b.store.ListDutyAssignmentsOn(date.Time())
	if err != nil {
		return nil, fmt.Errorf("could not load duty roster for %s: %w", date, err)
	}
	if len(assignments) == 0 {
		log.Info().Str("date", date.String()).Msg("no duty assignments, nothing to remind")
		return nil, nil
	}

	contacts, err := b.store.FindContactsByRole([]model.Role{model.RoleImam, model.RoleBilal})
	if err != nil {
		return nil, fmt.Errorf("could not load duty contacts: %w", err)
	}
	byID := make(map[int]model.Contact, len(contacts))
	for _, c := range contacts {
		byID[c.ID] = c
	}

	// group slot-roles per assignee, preserving roster order
	var order []int
	slotRoles := make(map[int][]string)
	for _, a := range assignments {
		if _, seen := slotRoles[a.ContactID]; !seen {
			order = append(order, a.ContactID)
		}
		slotRoles[a.ContactID] = append(slotRoles[a.ContactID], a.SlotRole)
	}

	var msgs []model.OutboundMessage
	for _, id := range order {
		contact, ok := byID[id]
		if !ok {
			log.Error().Int("contact_id", id).Msg("duty assignment references unknown or inactive contact")
			continue
		}
		msgs = append(msgs, model.OutboundMessage{
			TargetPhone: phone.International(contact.Phone),
			TemplateID:  b.templateID,
			Variables: []string{
				contact.DisplayName,
				date.String(),
				strings.Join(slotRoles[id], ", "),
			},
		})
	}
	if len(msgs) == 0 {
		return nil, nil
	}

	results := b.dispatcher.SendBatch(msgs)
	for _, r := range results {
		if r.Err != nil {
			log.Error().Err(r.Err).Str("target", r.Target).Msg("duty reminder failed")
		}
	}
	return results, nil
}
