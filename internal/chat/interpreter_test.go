package chat_test

import (
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emasjid/gateway/internal/chat"
	"github.com/emasjid/gateway/internal/db"
	"github.com/emasjid/gateway/internal/model"
)

type availKey struct {
	contactID int
	date      string
	slot      string
}

// fakeStore is an in-memory db.Store with the same upsert/delete semantics
// as the Postgres implementation.
type fakeStore struct {
	records map[availKey]model.AvailabilityRecord
	duties  []model.DutyAssignment

	// failSlots makes writes and deletes for these slot names fail.
	failSlots map[string]bool
	// failReads makes the list queries fail.
	failReads bool
}

var _ db.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		records:   make(map[availKey]model.AvailabilityRecord),
		failSlots: make(map[string]bool),
	}
}

func (f *fakeStore) FindActiveContactByAnyPhone(candidates []string) (*model.Contact, error) {
	return nil, nil
}

func (f *fakeStore) FindContactsByRole(roles []model.Role) ([]model.Contact, error) {
	return nil, nil
}

func (f *fakeStore) UpsertUnavailability(contactID int, date time.Time, slot string, reason *string) error {
	if f.failSlots[slot] {
		return errors.New("write refused")
	}
	key := availKey{contactID, date.Format("2006-01-02"), slot}
	rec, ok := f.records[key]
	if !ok {
		rec = model.AvailabilityRecord{ContactID: contactID, Date: date, Slot: slot}
	}
	rec.IsAvailable = false
	rec.Reason = reason
	f.records[key] = rec
	return nil
}

func (f *fakeStore) DeleteUnavailability(contactID int, date time.Time, slot string) (bool, error) {
	if f.failSlots[slot] {
		return false, errors.New("delete refused")
	}
	key := availKey{contactID, date.Format("2006-01-02"), slot}
	if _, ok := f.records[key]; !ok {
		return false, nil
	}
	delete(f.records, key)
	return true, nil
}

// ListUnavailability mirrors the Postgres ordering: date ascending, then
// canonical slot order within a date.
func (f *fakeStore) ListUnavailability(contactID int, from time.Time, limit int) ([]model.AvailabilityRecord, error) {
	if f.failReads {
		return nil, errors.New("read refused")
	}
	var out []model.AvailabilityRecord
	for _, rec := range f.records {
		if rec.ContactID == contactID && !rec.Date.Before(from) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		si, _ := model.SlotFromName(out[i].Slot)
		sj, _ := model.SlotFromName(out[j].Slot)
		return si < sj
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) ListDutyAssignments(contactID int, from time.Time, limit int) ([]model.DutyAssignment, error) {
	if f.failReads {
		return nil, errors.New("read refused")
	}
	var out []model.DutyAssignment
	for _, d := range f.duties {
		if d.ContactID == contactID && !d.Date.Before(from) && len(out) < limit {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeStore) ListDutyAssignmentsOn(date time.Time) ([]model.DutyAssignment, error) {
	var out []model.DutyAssignment
	for _, d := range f.duties {
		if d.Date.Equal(date) {
			out = append(out, d)
		}
	}
	return out, nil
}

func bilal() *model.Contact {
	return &model.Contact{ID: 7, DisplayName: "Ahmad", Role: model.RoleBilal, Phone: "0123456789", Active: true}
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, time.November, 20, 9, 0, 0, 0, time.UTC)
	}
}

func newInterpreter(store db.Store) *chat.Interpreter {
	return chat.NewInterpreter(store).WithClock(fixedClock())
}

func TestHandle_AuthorizationGate(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	it := newInterpreter(store)

	clerk := &model.Contact{ID: 3, DisplayName: "Siti", Role: model.RoleOther, Active: true}
	reply := it.Handle(clerk, chat.Parse("CUTI 2024-12-01 Subuh"))

	assert.Contains(t, reply, "Imam dan Bilal")
	assert.Empty(t, store.records, "unauthorized command must not write")
}

func TestHandle_UnavailabilityRoundTrip(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	it := newInterpreter(store)

	reply := it.Handle(bilal(), chat.Parse("CUTI 2024-12-01 Subuh"))
	assert.Contains(t, reply, "Subuh")
	assert.Contains(t, reply, "2024-12-01")
	require.Len(t, store.records, 1)
	rec := store.records[availKey{7, "2024-12-01", "Subuh"}]
	assert.False(t, rec.IsAvailable)

	reply = it.Handle(bilal(), chat.Parse("BATAL 2024-12-01 Subuh"))
	assert.Contains(t, reply, "dibatalkan")
	assert.Contains(t, reply, "Subuh")
	assert.Empty(t, store.records)
}

func TestHandle_MarkIsIdempotentAndKeepsLatestReason(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	it := newInterpreter(store)

	it.Handle(bilal(), chat.Parse("CUTI 2024-12-01 Subuh kenduri"))
	it.Handle(bilal(), chat.Parse("CUTI 2024-12-01 Subuh hal keluarga"))

	require.Len(t, store.records, 1, "repeated mark must keep one record per key")
	rec := store.records[availKey{7, "2024-12-01", "Subuh"}]
	require.NotNil(t, rec.Reason)
	assert.Equal(t, "hal keluarga", *rec.Reason)
}

func TestHandle_MarkAllSlots(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	it := newInterpreter(store)

	reply := it.Handle(bilal(), chat.Parse("CUTI 2024-12-01 SEMUA"))

	assert.Len(t, store.records, len(model.AllSlots))
	for _, s := range model.AllSlots {
		assert.Contains(t, reply, s.String())
	}
}

func TestHandle_MarkPartialFailureListsOnlyWrittenSlots(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.failSlots["Zohor"] = true
	it := newInterpreter(store)

	reply := it.Handle(bilal(), chat.Parse("CUTI 2024-12-01 SEMUA"))

	assert.Len(t, store.records, len(model.AllSlots)-1, "sibling slots must still be written")
	assert.NotContains(t, reply, "Zohor")
	assert.Contains(t, reply, "Subuh")
	assert.Contains(t, reply, "Isyak")
}

func TestHandle_MarkTotalFailure(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.failSlots["Subuh"] = true
	it := newInterpreter(store)

	reply := it.Handle(bilal(), chat.Parse("CUTI 2024-12-01 Subuh"))

	assert.Contains(t, reply, "gagal")
	assert.Empty(t, store.records)
}

func TestHandle_CancelWithoutRecordIsNoOp(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	it := newInterpreter(store)

	reply := it.Handle(bilal(), chat.Parse("BATAL 2024-12-01 Subuh"))

	assert.Contains(t, reply, "Tiada rekod cuti")
	assert.Empty(t, store.records)
}

func TestHandle_InvalidSlotNamesTokenAndWritesNothing(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	it := newInterpreter(store)

	reply := it.Handle(bilal(), chat.Parse("CUTI 2024-12-01 Dzuhur"))

	assert.Contains(t, reply, "Dzuhur")
	assert.Empty(t, store.records)
}

func TestHandle_MissingDateExplainsUsage(t *testing.T) {
	t.Parallel()

	it := newInterpreter(newFakeStore())

	reply := it.Handle(bilal(), chat.Parse("CUTI Subuh"))

	assert.Contains(t, reply, "Tarikh")
	assert.Contains(t, reply, "CUTI 2024-12-01 Subuh")
}

func TestHandle_DutyQueryGroupsByDate(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	d1 := time.Date(2024, time.November, 22, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, time.November, 23, 0, 0, 0, 0, time.UTC)
	store.duties = []model.DutyAssignment{
		{ContactID: 7, Date: d1, SlotRole: "Bilal Subuh"},
		{ContactID: 7, Date: d1, SlotRole: "Bilal Isyak"},
		{ContactID: 7, Date: d2, SlotRole: "Bilal Maghrib"},
		{ContactID: 9, Date: d1, SlotRole: "Imam Subuh"},
	}
	it := newInterpreter(store)

	reply := it.Handle(bilal(), chat.Parse("TUGASAN"))

	assert.Contains(t, reply, "*2024-11-22*")
	assert.Contains(t, reply, "*2024-11-23*")
	assert.Contains(t, reply, "Bilal Subuh")
	assert.NotContains(t, reply, "Imam Subuh", "other contacts' duties must not leak")
	// both duties of 2024-11-22 sit under a single heading
	assert.Equal(t, 1, strings.Count(reply, "*2024-11-22*"))
}

func TestHandle_DutyQueryEmpty(t *testing.T) {
	t.Parallel()

	it := newInterpreter(newFakeStore())

	reply := it.Handle(bilal(), chat.Parse("TUGASAN"))

	assert.Contains(t, reply, "Tiada tugasan")
}

func TestHandle_ListUnavailableEmpty(t *testing.T) {
	t.Parallel()

	it := newInterpreter(newFakeStore())

	reply := it.Handle(bilal(), chat.Parse("SENARAI"))

	assert.Contains(t, reply, "Tiada rekod cuti")
}

func TestHandle_ListUnavailableGroupsByDateWithReasons(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	it := newInterpreter(store)

	it.Handle(bilal(), chat.Parse("CUTI 2024-12-01 Isyak"))
	it.Handle(bilal(), chat.Parse("CUTI 2024-12-01 Subuh kenduri"))
	it.Handle(bilal(), chat.Parse("CUTI 2024-12-03 Maghrib"))

	reply := it.Handle(bilal(), chat.Parse("SENARAI"))

	assert.Contains(t, reply, "*2024-12-01*")
	assert.Contains(t, reply, "*2024-12-03*")
	assert.Equal(t, 1, strings.Count(reply, "*2024-12-01*"),
		"both slots of the same date sit under one heading")
	assert.Contains(t, reply, "Subuh (kenduri)")
	assert.Contains(t, reply, "Maghrib")
	// canonical slot order within the date, not entry order
	assert.Less(t, strings.Index(reply, "Subuh"), strings.Index(reply, "Isyak"))
}

func TestHandle_DutyQueryLookupFailure(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.failReads = true
	it := newInterpreter(store)

	reply := it.Handle(bilal(), chat.Parse("TUGASAN"))

	assert.Contains(t, reply, "tidak dapat memuatkan")
	assert.NotContains(t, reply, "gagal disimpan", "a read failure must not claim a save failed")
}

func TestHandle_ListUnavailableLookupFailure(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.failReads = true
	it := newInterpreter(store)

	reply := it.Handle(bilal(), chat.Parse("SENARAI"))

	assert.Contains(t, reply, "tidak dapat memuatkan")
	assert.NotContains(t, reply, "gagal disimpan")
}

func TestHandle_HelpMentionsEveryCommand(t *testing.T) {
	t.Parallel()

	it := newInterpreter(newFakeStore())

	reply := it.Handle(bilal(), chat.Parse("hello"))

	for _, kw := range []string{"TUGASAN", "CUTI", "SENARAI", "BATAL"} {
		assert.Contains(t, reply, kw)
	}
}
