package waitlist

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one queued request for a sold-out offering. Rank is not stored:
// a user's position is always computed as the count of entries with an
// earlier joined-at plus one, so withdrawals never trigger renumbering.
type Entry struct {
	id         uuid.UUID
	offeringID uuid.UUID
	userID     uuid.UUID
	joinedAt   time.Time
	notifiedAt *time.Time
}

func NewEntry(offeringID, userID uuid.UUID, now time.Time) *Entry {
	return &Entry{
		id:         uuid.New(),
		offeringID: offeringID,
		userID:     userID,
		joinedAt:   now,
	}
}

func Reconstruct(id, offeringID, userID uuid.UUID, joinedAt time.Time, notifiedAt *time.Time) *Entry {
	return &Entry{
		id:         id,
		offeringID: offeringID,
		userID:     userID,
		joinedAt:   joinedAt,
		notifiedAt: notifiedAt,
	}
}

func (e *Entry) ID() uuid.UUID          { return e.id }
func (e *Entry) OfferingID() uuid.UUID  { return e.offeringID }
func (e *Entry) UserID() uuid.UUID      { return e.userID }
func (e *Entry) JoinedAt() time.Time    { return e.joinedAt }
func (e *Entry) NotifiedAt() *time.Time { return e.notifiedAt }

// Notified reports whether this entry already received a promotion offer.
func (e *Entry) Notified() bool {
	return e.notifiedAt != nil
}

// Before orders entries FIFO: earlier joined-at wins; on an exact timestamp
// tie the lower user id wins, so promotion is deterministic.
func (e *Entry) Before(other *Entry) bool {
	if e.joinedAt.Equal(other.joinedAt) {
		return e.userID.String() < other.userID.String()
	}
	return e.joinedAt.Before(other.joinedAt)
}
