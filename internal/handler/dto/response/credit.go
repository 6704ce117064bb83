package response

import (
	"time"

	"studio-ops/internal/usecase/commands"
	"studio-ops/internal/usecase/queries"

	"github.com/google/uuid"
)

type PackageResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	GrantedServings int32     `json:"grantedServings"`
	GrantedImages   *int32    `json:"grantedImages,omitempty"`
	PriceCents      int64     `json:"priceCents"`
	Active          bool      `json:"active"`
}

func FromPackageView(v *queries.PackageView) *PackageResponse {
	return &PackageResponse{
		ID:              v.ID,
		Name:            v.Name,
		GrantedServings: v.GrantedServings,
		GrantedImages:   v.GrantedImages,
		PriceCents:      v.PriceCents,
		Active:          v.Active,
	}
}

func FromPackageViews(views []*queries.PackageView) []*PackageResponse {
	result := make([]*PackageResponse, len(views))
	for i, v := range views {
		result[i] = FromPackageView(v)
	}
	return result
}

type AssignmentResponse struct {
	ID                   uuid.UUID  `json:"id"`
	ClientID             uuid.UUID  `json:"clientId"`
	PackageTemplateID    *uuid.UUID `json:"packageTemplateId,omitempty"`
	PackageName          *string    `json:"packageName,omitempty"`
	GrantedServings      *int32     `json:"grantedServings,omitempty"`
	ConsumedAtAssignment int32      `json:"consumedAtAssignment"`
	RemainingServings    int32      `json:"remainingServings"`
	PaymentStatus        string     `json:"paymentStatus"`
	ExpiresAt            *time.Time `json:"expiresAt,omitempty"`
	Notes                string     `json:"notes"`
	SupersededAt         *time.Time `json:"supersededAt,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
}

func FromAssignmentView(v *queries.AssignmentView) *AssignmentResponse {
	return &AssignmentResponse{
		ID:                   v.ID,
		ClientID:             v.ClientID,
		PackageTemplateID:    v.PackageTemplateID,
		PackageName:          v.PackageName,
		GrantedServings:      v.GrantedServings,
		ConsumedAtAssignment: v.ConsumedAtAssignment,
		RemainingServings:    v.RemainingServings,
		PaymentStatus:        v.PaymentStatus,
		ExpiresAt:            v.ExpiresAt,
		Notes:                v.Notes,
		SupersededAt:         v.SupersededAt,
		CreatedAt:            v.CreatedAt,
	}
}

func FromAssignmentViews(views []*queries.AssignmentView) []*AssignmentResponse {
	result := make([]*AssignmentResponse, len(views))
	for i, v := range views {
		result[i] = FromAssignmentView(v)
	}
	return result
}

type CreditStateResponse struct {
	ClientID          uuid.UUID `json:"clientId"`
	RemainingServings int32     `json:"remainingServings"`
	RemainingImages   *int32    `json:"remainingImages,omitempty"`
	ConsumedImages    int32     `json:"consumedImages"`
	ReservedImages    int32     `json:"reservedImages"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type ClientCreditResponse struct {
	ClientID         uuid.UUID            `json:"clientId"`
	ClientName       string               `json:"clientName"`
	State            *CreditStateResponse `json:"state,omitempty"`
	ActiveAssignment *AssignmentResponse  `json:"activeAssignment,omitempty"`
}

func FromClientCreditView(v *queries.ClientCreditView) *ClientCreditResponse {
	resp := &ClientCreditResponse{
		ClientID:   v.Client.ID,
		ClientName: v.Client.Name,
	}
	if v.State != nil {
		resp.State = &CreditStateResponse{
			ClientID:          v.State.ClientID,
			RemainingServings: v.State.RemainingServings,
			RemainingImages:   v.State.RemainingImages,
			ConsumedImages:    v.State.ConsumedImages,
			ReservedImages:    v.State.ReservedImages,
			UpdatedAt:         v.State.UpdatedAt,
		}
	}
	if v.ActiveAssignment != nil {
		resp.ActiveAssignment = FromAssignmentView(v.ActiveAssignment)
	}
	return resp
}

// AssignmentPreviewResponse carries the proposed triple for display along
// with field-scoped validation messages; an empty fieldErrors map means the
// triple is committable as-is.
type AssignmentPreviewResponse struct {
	Granted              *int              `json:"granted"`
	ConsumedAtAssignment int               `json:"consumedAtAssignment"`
	Remaining            int               `json:"remaining"`
	FieldErrors          map[string]string `json:"fieldErrors"`
}

func FromAssignmentPreview(p *commands.AssignmentPreview) *AssignmentPreviewResponse {
	return &AssignmentPreviewResponse{
		Granted:              p.Granted,
		ConsumedAtAssignment: p.ConsumedAtAssignment,
		Remaining:            p.Remaining,
		FieldErrors:          p.FieldErrors,
	}
}
