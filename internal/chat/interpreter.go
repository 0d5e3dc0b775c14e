package chat

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/emasjid/gateway/internal/db"
	"github.com/emasjid/gateway/internal/model"
)

const (
	// dutyLookahead bounds the duty-query reply to the next 14 roster rows.
	dutyLookahead = 14
	// leaveListLimit bounds the recorded-leave reply.
	leaveListLimit = 20
)

// Interpreter executes parsed commands against the store and produces the
// reply body. It keeps no session state: every message is interpreted on
// its own.
type Interpreter struct {
	store db.Store
	now   func() time.Time
}

func NewInterpreter(store db.Store) *Interpreter {
	return &Interpreter{store: store, now: time.Now}
}

// WithClock overrides the time source, used by tests to pin "today".
func (it *Interpreter) WithClock(now func() time.Time) *Interpreter {
	it.now = now
	return it
}

// NotRegisteredReply is the fixed reply for senders with no active contact.
func NotRegisteredReply() string {
	return replyNotRegistered
}

// Handle runs one command for a resolved contact and returns exactly one
// reply body. Grammar problems and authorization failures are replies, not
// errors; only the store can fail, and those failures are degraded into
// the partial-result replies described per command.
func (it *Interpreter) Handle(contact *model.Contact, cmd model.Command) string {
	if !contact.Role.DutyEligible() {
		return replyNotPermitted
	}

	switch cmd.Issue {
	case model.IssueMissingDate:
		return replyMissingDate
	case model.IssueInvalidDate:
		return replyInvalidDate(cmd.BadToken)
	case model.IssueInvalidSlot:
		return replyInvalidSlot(cmd.BadToken)
	}

	switch cmd.Kind {
	case model.CmdDutyQuery:
		return it.dutyQuery(contact)
	case model.CmdMarkUnavailable:
		return it.markUnavailable(contact, cmd)
	case model.CmdListUnavailable:
		return it.listUnavailable(contact)
	case model.CmdCancelUnavailable:
		return it.cancelUnavailable(contact, cmd)
	}
	return replyHelp
}

func (it *Interpreter) today() time.Time {
	return model.DateOf(it.now()).Time()
}

func (it *Interpreter) dutyQuery(contact *model.Contact) string {
	duties, err := it.store.ListDutyAssignments(contact.ID, it.today(), dutyLookahead)
	if err != nil {
		log.Error().Err(err).Int("contact_id", contact.ID).Msg("duty query failed")
		return replyLookupFailed
	}
	if len(duties) == 0 {
		return replyNoDuties
	}

	var groups []dateGroup
	for _, d := range duties {
		date := model.DateOf(d.Date)
		if len(groups) == 0 || groups[len(groups)-1].date != date {
			groups = append(groups, dateGroup{date: date})
		}
		last := &groups[len(groups)-1]
		last.items = append(last.items, d.SlotRole)
	}
	return renderGroups("Tugasan anda yang akan datang:", groups)
}

// markUnavailable upserts one record per requested slot. Slots fail
// independently: one bad write never aborts its siblings, and the reply
// names exactly the slots that were stored.
func (it *Interpreter) markUnavailable(contact *model.Contact, cmd model.Command) string {
	var reason *string
	if cmd.Reason != "" {
		reason = &cmd.Reason
	}

	var written []model.Slot
	for _, slot := range cmd.Slots {
		err := it.store.UpsertUnavailability(contact.ID, cmd.Date.Time(), slot.String(), reason)
		if err != nil {
			log.Error().Err(err).
				Int("contact_id", contact.ID).
				Str("slot", slot.String()).
				Msg("failed to record leave for slot")
			continue
		}
		written = append(written, slot)
	}

	if len(written) == 0 {
		return replyMarkFailed
	}
	return replyMarked(cmd.Date, written)
}

func (it *Interpreter) listUnavailable(contact *model.Contact) string {
	records, err := it.store.ListUnavailability(contact.ID, it.today(), leaveListLimit)
	if err != nil {
		log.Error().Err(err).Int("contact_id", contact.ID).Msg("leave listing failed")
		return replyLookupFailed
	}
	if len(records) == 0 {
		return replyNoLeave
	}

	var groups []dateGroup
	for _, r := range records {
		date := model.DateOf(r.Date)
		if len(groups) == 0 || groups[len(groups)-1].date != date {
			groups = append(groups, dateGroup{date: date})
		}
		item := r.Slot
		if r.Reason != nil && *r.Reason != "" {
			item += " (" + *r.Reason + ")"
		}
		last := &groups[len(groups)-1]
		last.items = append(last.items, item)
	}
	return renderGroups("Cuti anda yang direkodkan:", groups)
}

// cancelUnavailable deletes one record per requested slot. Keys with no
// record are skipped silently; cancelling leave that was never recorded is
// a no-op, not an error.
func (it *Interpreter) cancelUnavailable(contact *model.Contact, cmd model.Command) string {
	var removed []model.Slot
	for _, slot := range cmd.Slots {
		ok, err := it.store.DeleteUnavailability(contact.ID, cmd.Date.Time(), slot.String())
		if err != nil {
			log.Error().Err(err).
				Int("contact_id", contact.ID).
				Str("slot", slot.String()).
				Msg("failed to cancel leave for slot")
			continue
		}
		if ok {
			removed = append(removed, slot)
		}
	}

	if len(removed) == 0 {
		return replyNothingCancelled(cmd.Date)
	}
	return replyCancelled(cmd.Date, removed)
}
