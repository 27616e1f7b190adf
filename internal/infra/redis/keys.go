package redis

import (
	"fmt"

	"github.com/google/uuid"
)

const ns = "casaraiz:v1"

func keyOfferingAvailability(offeringID uuid.UUID) string {
	return fmt.Sprintf("%s:offering:%s:availability", ns, offeringID)
}

func keyHouseAvailability(houseID uuid.UUID) string {
	return fmt.Sprintf("%s:house:%s:availability", ns, houseID)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}
