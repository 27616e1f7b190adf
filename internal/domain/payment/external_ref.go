package payment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"casaraiz-backend/internal/domain/offering"

	"github.com/google/uuid"
)

var ErrMalformedReference = errors.New("malformed external reference")

// ExternalReference is the deterministic key sent to the processor with each
// checkout session: {payableType}_{key}_{userId}_{timestampMillis}. The key is
// the registration id when one pre-exists, otherwise the offering id. It lets
// a webhook be traced back to its payment without trusting payload fields.
type ExternalReference struct {
	Kind      offering.Kind
	Key       uuid.UUID
	UserID    uuid.UUID
	Timestamp time.Time
}

func NewExternalReference(kind offering.Kind, key, userID uuid.UUID, at time.Time) ExternalReference {
	return ExternalReference{
		Kind:      kind,
		Key:       key,
		UserID:    userID,
		Timestamp: at,
	}
}

func (r ExternalReference) String() string {
	return fmt.Sprintf("%s_%s_%s_%d", r.Kind, r.Key, r.UserID, r.Timestamp.UnixMilli())
}

func ParseExternalReference(s string) (ExternalReference, error) {
	parts := strings.Split(s, "_")
	if len(parts) != 4 {
		return ExternalReference{}, ErrMalformedReference
	}

	kind := offering.Kind(parts[0])
	if !kind.IsValid() {
		return ExternalReference{}, ErrMalformedReference
	}

	key, err := uuid.Parse(parts[1])
	if err != nil {
		return ExternalReference{}, ErrMalformedReference
	}

	userID, err := uuid.Parse(parts[2])
	if err != nil {
		return ExternalReference{}, ErrMalformedReference
	}

	millis, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil || millis < 0 {
		return ExternalReference{}, ErrMalformedReference
	}

	return ExternalReference{
		Kind:      kind,
		Key:       key,
		UserID:    userID,
		Timestamp: time.UnixMilli(millis).UTC(),
	}, nil
}
