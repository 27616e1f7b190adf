package registration

// Status is the registration lifecycle shared by all offering kinds.
// Online payments enter at pending and are confirmed exclusively by the
// webhook processor; manual/cash/free paths enter directly at confirmed.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusExpired, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusExpired, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo encodes the allowed edges:
// pending -> confirmed | rejected | expired; confirmed -> cancelled.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusRejected || next == StatusExpired
	case StatusConfirmed:
		return next == StatusCancelled
	default:
		return false
	}
}

// Method is the payment path the registrant chose. Only the online path
// goes through the external processor and the webhook confirmation.
type Method string

const (
	MethodOnline   Method = "online"
	MethodTransfer Method = "transfer"
	MethodCash     Method = "cash"
	MethodFree     Method = "free"
)

func (m Method) String() string {
	return string(m)
}

func (m Method) IsValid() bool {
	switch m {
	case MethodOnline, MethodTransfer, MethodCash, MethodFree:
		return true
	default:
		return false
	}
}

// RequiresWebhook reports whether confirmation waits for the processor.
func (m Method) RequiresWebhook() bool {
	return m == MethodOnline
}
