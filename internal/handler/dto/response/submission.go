package response

import (
	"time"

	"studio-ops/internal/usecase/queries"

	"github.com/google/uuid"
)

type SubmissionResponse struct {
	ID                 uuid.UUID  `json:"id"`
	ClientID           uuid.UUID  `json:"clientId"`
	ClientName         string     `json:"clientName"`
	Title              string     `json:"title"`
	ImageCount         int32      `json:"imageCount"`
	Status             string     `json:"status"`
	ReceivedAt         time.Time  `json:"receivedAt"`
	InProgressAt       *time.Time `json:"inProgressAt,omitempty"`
	ReadyForReviewAt   *time.Time `json:"readyForReviewAt,omitempty"`
	ChangesRequestedAt *time.Time `json:"changesRequestedAt,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	EditCount          int32      `json:"editCount"`
	CreditOverride     bool       `json:"creditOverride"`
	CanceledAt         *time.Time `json:"canceledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type SubmissionListResponse struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	ImageCount int32      `json:"imageCount"`
	Status     string     `json:"status"`
	ReceivedAt time.Time  `json:"receivedAt"`
	CanceledAt *time.Time `json:"canceledAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func FromSubmissionView(v *queries.SubmissionView) *SubmissionResponse {
	return &SubmissionResponse{
		ID:                 v.ID,
		ClientID:           v.ClientID,
		ClientName:         v.ClientName,
		Title:              v.Title,
		ImageCount:         v.ImageCount,
		Status:             v.Status,
		ReceivedAt:         v.ReceivedAt,
		InProgressAt:       v.InProgressAt,
		ReadyForReviewAt:   v.ReadyForReviewAt,
		ChangesRequestedAt: v.ChangesRequestedAt,
		CompletedAt:        v.CompletedAt,
		EditCount:          v.EditCount,
		CreditOverride:     v.CreditOverride,
		CanceledAt:         v.CanceledAt,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func FromSubmissionListItems(items []*queries.SubmissionListItem) []*SubmissionListResponse {
	result := make([]*SubmissionListResponse, len(items))
	for i, item := range items {
		result[i] = &SubmissionListResponse{
			ID:         item.ID,
			Title:      item.Title,
			ImageCount: item.ImageCount,
			Status:     item.Status,
			ReceivedAt: item.ReceivedAt,
			CanceledAt: item.CanceledAt,
			CreatedAt:  item.CreatedAt,
		}
	}
	return result
}
