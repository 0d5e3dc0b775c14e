package chat

import (
	"strings"
	"time"

	"github.com/emasjid/gateway/internal/model"
)

// Accepted date layouts, tried in order. The non-padded layout verbs let
// time.Parse take single- or double-digit day and month in every shape.
var dateLayouts = []string{
	"2006-1-2", // YYYY-M-D
	"2/1/2006", // D/M/YYYY
	"2-1-2006", // D-M-YYYY
}

// ParseDate parses one token as a calendar date. The whole token must
// match one of the accepted layouts; anything else reports false.
func ParseDate(token string) (model.CalendarDate, bool) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, token)
		if err == nil {
			return model.DateOf(t), true
		}
	}
	return model.CalendarDate{}, false
}

// looksLikeDate reports whether a token was probably meant as a date even
// though it failed to parse, so the sender gets an invalid-date reply
// instead of an invalid-slot one.
func looksLikeDate(token string) bool {
	if !strings.ContainsAny(token, "0123456789") {
		return false
	}
	return strings.ContainsAny(token, "/-")
}

// slotAliases maps regional spelling variants onto canonical slots. The
// table is deliberately narrow: only spellings seen in the congregation's
// own records are accepted, everything else is rejected with the token
// echoed back.
var slotAliases = map[string]model.Slot{
	"SUBOH":  model.SlotSubuh,
	"ZUHUR":  model.SlotZohor,
	"ASHAR":  model.SlotAsar,
	"MAGRIB": model.SlotMaghrib,
	"ISYA":   model.SlotIsyak,
	"ISHAK":  model.SlotIsyak,
}

// allSlotTokens are the accepted spellings of the "every slot" sentinel.
var allSlotTokens = map[string]struct{}{
	"SEMUA": {},
	"ALL":   {},
}

// ResolveSlots maps a slot token to the concrete slot set it names. The
// "all" sentinel expands to every canonical slot. ok is false when the
// token is not a recognized slot spelling.
func ResolveSlots(token string) (slots []model.Slot, ok bool) {
	upper := strings.ToUpper(token)
	if _, all := allSlotTokens[upper]; all {
		return append([]model.Slot(nil), model.AllSlots...), true
	}
	for _, s := range model.AllSlots {
		if strings.ToUpper(s.String()) == upper {
			return []model.Slot{s}, true
		}
	}
	if s, found := slotAliases[upper]; found {
		return []model.Slot{s}, true
	}
	return nil, false
}
