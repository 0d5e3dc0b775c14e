package model

// CommandKind identifies which chat command a message resolved to.
type CommandKind int

const (
	CmdHelp CommandKind = iota
	CmdDutyQuery
	CmdMarkUnavailable
	CmdListUnavailable
	CmdCancelUnavailable
)

func (k CommandKind) String() string {
	switch k {
	case CmdDutyQuery:
		return "duty_query"
	case CmdMarkUnavailable:
		return "mark_unavailable"
	case CmdListUnavailable:
		return "list_unavailable"
	case CmdCancelUnavailable:
		return "cancel_unavailable"
	}
	return "help"
}

// ParseIssue is a recoverable grammar problem. Every member maps to a
// specific reply telling the sender how to fix their message.
type ParseIssue int

const (
	IssueNone ParseIssue = iota
	IssueMissingDate
	IssueInvalidDate
	IssueInvalidSlot
)

// Command is the structured result of parsing one inbound message.
// Slots is nil unless the command takes a slot argument; the "all slots"
// sentinel is expanded by the parser so the interpreter only ever sees
// concrete slots. Issue is IssueNone for a well-formed command.
type Command struct {
	Kind  CommandKind
	Date  CalendarDate
	Slots []Slot

	// Reason is the free text left over after the date and slot arguments,
	// stored alongside an unavailability record.
	Reason string

	Issue ParseIssue
	// BadToken carries the offending token for IssueInvalidSlot replies.
	BadToken string
}
