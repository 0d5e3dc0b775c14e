package chat

import (
	"fmt"
	"strings"

	"github.com/emasjid/gateway/internal/model"
)

// Fixed reply texts. Replies are in Malay, the working language of the
// congregation; every rejection names the specific problem and shows a
// usage example so the sender can correct their message.
const (
	replyNotRegistered = "Maaf, nombor telefon anda tidak berdaftar dalam sistem. Sila hubungi pejabat masjid."

	replyNotPermitted = "Maaf, arahan ini hanya untuk petugas Imam dan Bilal."

	replyHelp = "Arahan yang diterima:\n" +
		"1. TUGASAN - senarai tugasan anda yang akan datang\n" +
		"2. CUTI <tarikh> <waktu> - rekod cuti (cth: CUTI 2024-12-01 Subuh)\n" +
		"3. SENARAI - senarai cuti anda yang direkodkan\n" +
		"4. BATAL <tarikh> <waktu> - batal cuti (cth: BATAL 2024-12-01 Subuh)\n" +
		"Tarikh: 2024-12-01, 01/12/2024 atau 01-12-2024. " +
		"Waktu: Subuh, Zohor, Asar, Maghrib, Isyak atau SEMUA."

	replyMissingDate = "Tarikh tidak dijumpai dalam mesej anda. Contoh: CUTI 2024-12-01 Subuh"

	replyNoDuties = "Tiada tugasan akan datang dalam jadual anda."

	replyNoLeave = "Tiada rekod cuti akan datang."

	replyMarkFailed = "Maaf, rekod cuti gagal disimpan. Sila cuba sebentar lagi."

	replyLookupFailed = "Maaf, sistem tidak dapat memuatkan rekod buat masa ini. Sila cuba sebentar lagi."
)

func replyInvalidDate(token string) string {
	return fmt.Sprintf("Tarikh '%s' tidak sah. Format diterima: 2024-12-01, 01/12/2024 atau 01-12-2024.", token)
}

func replyInvalidSlot(token string) string {
	return fmt.Sprintf("Waktu '%s' tidak dikenali. Waktu diterima: Subuh, Zohor, Asar, Maghrib, Isyak atau SEMUA.", token)
}

func replyMarked(date model.CalendarDate, slots []model.Slot) string {
	return fmt.Sprintf("Cuti direkodkan untuk %s: %s", date, joinSlots(slots))
}

func replyCancelled(date model.CalendarDate, slots []model.Slot) string {
	return fmt.Sprintf("Cuti dibatalkan untuk %s: %s", date, joinSlots(slots))
}

func replyNothingCancelled(date model.CalendarDate) string {
	return fmt.Sprintf("Tiada rekod cuti dijumpai untuk %s.", date)
}

func joinSlots(slots []model.Slot) string {
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}

// dateGroup is one date heading plus its item lines in a grouped reply.
type dateGroup struct {
	date  model.CalendarDate
	items []string
}

// renderGroups formats consecutive same-date rows under one heading:
//
//	*2024-12-01*
//	- Imam Subuh
func renderGroups(header string, groups []dateGroup) string {
	var b strings.Builder
	b.WriteString(header)
	for _, g := range groups {
		b.WriteString(fmt.Sprintf("\n\n*%s*", g.date))
		for _, item := range g.items {
			b.WriteString("\n- ")
			b.WriteString(item)
		}
	}
	return b.String()
}
