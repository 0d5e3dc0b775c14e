package chat_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emasjid/gateway/internal/chat"
	"github.com/emasjid/gateway/internal/model"
)

func TestParse_CommandKeywords(t *testing.T) {
	t.Parallel()

	cases := []struct {
		body string
		want model.CommandKind
	}{
		{"TUGASAN", model.CmdDutyQuery},
		{"tugasan saya", model.CmdDutyQuery},
		{"Jadual", model.CmdDutyQuery},
		{"DUTY", model.CmdDutyQuery},
		{"CUTI 2024-12-01", model.CmdMarkUnavailable},
		{"uzur 2024-12-01 Subuh", model.CmdMarkUnavailable},
		{"SENARAI", model.CmdListUnavailable},
		{"senarai cuti", model.CmdListUnavailable},
		{"LIST", model.CmdListUnavailable},
		{"BATAL 2024-12-01 Subuh", model.CmdCancelUnavailable},
		{"cancel 2024-12-01", model.CmdCancelUnavailable},
		{"BANTUAN", model.CmdHelp},
		{"help", model.CmdHelp},
		{"apa khabar semua", model.CmdHelp},
		{"", model.CmdHelp},
	}
	for _, tc := range cases {
		got := chat.Parse(tc.body)
		assert.Equal(t, tc.want, got.Kind, "body %q", tc.body)
	}
}

func TestParse_IsDeterministic(t *testing.T) {
	t.Parallel()

	first := chat.Parse("CUTI 2024-12-01 Subuh kenduri")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, chat.Parse("CUTI 2024-12-01 Subuh kenduri"))
	}
}

func TestParse_MarkWithDateAndSlot(t *testing.T) {
	t.Parallel()

	cmd := chat.Parse("CUTI 2024-12-01 Subuh")
	require.Equal(t, model.IssueNone, cmd.Issue)
	assert.Equal(t, model.CalendarDate{Year: 2024, Month: time.December, Day: 1}, cmd.Date)
	assert.Equal(t, []model.Slot{model.SlotSubuh}, cmd.Slots)
	assert.Empty(t, cmd.Reason)
}

func TestParse_SlotBeforeDate(t *testing.T) {
	t.Parallel()

	cmd := chat.Parse("CUTI Subuh 2024-12-01")
	require.Equal(t, model.IssueNone, cmd.Issue)
	assert.Equal(t, []model.Slot{model.SlotSubuh}, cmd.Slots)
	assert.Equal(t, "2024-12-01", cmd.Date.String())
}

func TestParse_MissingSlotDefaultsToAll(t *testing.T) {
	t.Parallel()

	cmd := chat.Parse("CUTI 01/12/2024")
	require.Equal(t, model.IssueNone, cmd.Issue)
	assert.Equal(t, model.AllSlots, cmd.Slots)
}

func TestParse_AllSentinelExpands(t *testing.T) {
	t.Parallel()

	cmd := chat.Parse("CUTI 2024-12-01 SEMUA")
	require.Equal(t, model.IssueNone, cmd.Issue)
	assert.Equal(t, model.AllSlots, cmd.Slots)
}

func TestParse_ReasonText(t *testing.T) {
	t.Parallel()

	cmd := chat.Parse("CUTI 2024-12-01 Subuh kenduri di kampung")
	require.Equal(t, model.IssueNone, cmd.Issue)
	assert.Equal(t, "kenduri di kampung", cmd.Reason)
}

func TestParse_MissingDate(t *testing.T) {
	t.Parallel()

	cmd := chat.Parse("CUTI Subuh")
	assert.Equal(t, model.CmdMarkUnavailable, cmd.Kind)
	assert.Equal(t, model.IssueMissingDate, cmd.Issue)
}

func TestParse_InvalidDate(t *testing.T) {
	t.Parallel()

	cmd := chat.Parse("CUTI 2024-13-45 Subuh")
	assert.Equal(t, model.IssueInvalidDate, cmd.Issue)
	assert.Equal(t, "2024-13-45", cmd.BadToken)
}

func TestParse_InvalidSlotCarriesToken(t *testing.T) {
	t.Parallel()

	cmd := chat.Parse("CUTI 2024-12-01 Dzuhur")
	assert.Equal(t, model.CmdMarkUnavailable, cmd.Kind)
	assert.Equal(t, model.IssueInvalidSlot, cmd.Issue)
	assert.Equal(t, "Dzuhur", cmd.BadToken)
}

func TestParse_CancelArguments(t *testing.T) {
	t.Parallel()

	cmd := chat.Parse("BATAL 2024-12-01 Subuh")
	require.Equal(t, model.IssueNone, cmd.Issue)
	assert.Equal(t, model.CmdCancelUnavailable, cmd.Kind)
	assert.Equal(t, []model.Slot{model.SlotSubuh}, cmd.Slots)
}
