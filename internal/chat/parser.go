// Package chat implements the conversational side of the duty gateway:
// the command grammar, date and slot normalization, the interpreter that
// turns commands into store operations, and the fixed reply texts.
package chat

import (
	"strings"

	"github.com/emasjid/gateway/internal/model"
)

// Keyword tables. Matching is against the upper-cased message; first match
// in priority order wins.
var (
	dutyQueryExact = []string{"TUGASAN", "TUGASAN SAYA", "JADUAL", "DUTY"}
	markKeywords   = []string{"CUTI", "UZUR"}
	listExact      = []string{"SENARAI CUTI", "SENARAI", "LIST"}
	cancelKeywords = []string{"BATAL", "CANCEL"}
)

// Parse tokenizes one inbound message and resolves it to a structured
// command. Parsing is pure: the same body always yields the same command.
func Parse(body string) model.Command {
	upper := strings.ToUpper(strings.TrimSpace(body))
	fields := strings.Fields(strings.TrimSpace(body))

	for _, kw := range dutyQueryExact {
		if upper == kw {
			return model.Command{Kind: model.CmdDutyQuery}
		}
	}
	if kw, ok := leadingKeyword(fields, markKeywords); ok {
		return parseDatedCommand(model.CmdMarkUnavailable, kw, fields)
	}
	for _, kw := range listExact {
		if upper == kw || strings.HasPrefix(upper, kw+" ") {
			return model.Command{Kind: model.CmdListUnavailable}
		}
	}
	if kw, ok := leadingKeyword(fields, cancelKeywords); ok {
		return parseDatedCommand(model.CmdCancelUnavailable, kw, fields)
	}
	return model.Command{Kind: model.CmdHelp}
}

func leadingKeyword(fields []string, keywords []string) (string, bool) {
	if len(fields) == 0 {
		return "", false
	}
	lead := strings.ToUpper(fields[0])
	for _, kw := range keywords {
		if lead == kw {
			return kw, true
		}
	}
	return "", false
}

// parseDatedCommand scans the argument tokens once: the first token that
// parses as a date becomes the date, the first other token becomes the
// slot argument, and whatever is left becomes the reason text.
func parseDatedCommand(kind model.CommandKind, keyword string, fields []string) model.Command {
	cmd := model.Command{Kind: kind}

	var slotToken string
	var rest []string
	for _, tok := range fields[1:] {
		if cmd.Date.IsZero() {
			if d, ok := ParseDate(tok); ok {
				cmd.Date = d
				continue
			}
			if looksLikeDate(tok) {
				cmd.Issue = model.IssueInvalidDate
				cmd.BadToken = tok
				return cmd
			}
		}
		if slotToken == "" {
			slotToken = tok
			continue
		}
		rest = append(rest, tok)
	}

	if cmd.Date.IsZero() {
		cmd.Issue = model.IssueMissingDate
		return cmd
	}

	if slotToken == "" {
		cmd.Slots = append([]model.Slot(nil), model.AllSlots...)
	} else {
		slots, ok := ResolveSlots(slotToken)
		if !ok {
			cmd.Issue = model.IssueInvalidSlot
			cmd.BadToken = slotToken
			return cmd
		}
		cmd.Slots = slots
	}

	cmd.Reason = strings.Join(rest, " ")
	return cmd
}
