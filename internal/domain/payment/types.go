package payment

// Status mirrors the processor-side outcome of one checkout attempt.
// StatusUnfulfilled marks money that moved for a seat that no longer exists
// (capacity race loss); it is terminal and requires manual reconciliation.
type Status string

const (
	StatusPending     Status = "pending"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusExpired     Status = "expired"
	StatusUnfulfilled Status = "unfulfilled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusExpired, StatusUnfulfilled:
		return true
	default:
		return false
	}
}

// IsTerminal is the webhook idempotency check: a terminal payment must never
// be reprocessed.
func (s Status) IsTerminal() bool {
	return s != StatusPending
}

// TransferStatus tracks the house-side leg of a split payout.
type TransferStatus string

const (
	TransferPending     TransferStatus = "pending"
	TransferTransferred TransferStatus = "transferred"
	TransferFailed      TransferStatus = "failed"
)

func (s TransferStatus) String() string {
	return string(s)
}

func (s TransferStatus) IsValid() bool {
	switch s {
	case TransferPending, TransferTransferred, TransferFailed:
		return true
	default:
		return false
	}
}
