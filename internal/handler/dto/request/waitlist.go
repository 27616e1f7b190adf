package request

import "github.com/google/uuid"

type JoinWaitlistRequest struct {
	OfferingID uuid.UUID `json:"offering_id" binding:"required"`
}
