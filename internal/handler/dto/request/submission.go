package request

import (
	"studio-ops/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateSubmissionRequest struct {
	ClientID   uuid.UUID `json:"client_id" binding:"required"`
	Title      string    `json:"title" binding:"required,max=200"`
	ImageCount int       `json:"image_count" binding:"required,gt=0"`
	// ForceOverride spends past an insufficient image pool; recorded on the
	// submission for later billing review.
	ForceOverride bool `json:"force_override,omitempty"`
}

func (r CreateSubmissionRequest) ToCommand() commands.CreateSubmissionRequest {
	return commands.CreateSubmissionRequest{
		ClientID:      r.ClientID,
		Title:         r.Title,
		ImageCount:    r.ImageCount,
		ForceOverride: r.ForceOverride,
	}
}

type UpdateSubmissionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=received in_progress ready_for_review changes_requested completed"`
}
