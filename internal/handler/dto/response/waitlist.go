package response

import (
	"time"

	"github.com/google/uuid"

	"casaraiz-backend/internal/usecase/queries"
)

type WaitlistPositionResponse struct {
	OfferingID uuid.UUID `json:"offeringId"`
	UserID     uuid.UUID `json:"userId"`
	Position   int32     `json:"position"`
	JoinedAt   time.Time `json:"joinedAt"`
	Notified   bool      `json:"notified"`
}

func FromWaitlistPositionView(view *queries.WaitlistPositionView) *WaitlistPositionResponse {
	return &WaitlistPositionResponse{
		OfferingID: view.OfferingID,
		UserID:     view.UserID,
		Position:   view.Position,
		JoinedAt:   view.JoinedAt,
		Notified:   view.Notified,
	}
}
