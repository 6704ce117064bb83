package request

import (
	"time"

	"studio-ops/internal/usecase/commands"

	"github.com/google/uuid"
)

// AssignPackageRequest mirrors the assignment screen. A null package id
// clears the client's selection; overrides are operator corrections applied
// on top of the reconciled triple.
type AssignPackageRequest struct {
	PackageTemplateID *uuid.UUID `json:"package_template_id"`
	GrantedOverride   *int       `json:"granted_override,omitempty"`
	ConsumedOverride  *int       `json:"consumed_override,omitempty"`
	PaymentStatus     string     `json:"payment_status" binding:"required,oneof=unpaid invoiced paid waived"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	Notes             string     `json:"notes,omitempty"`
}

func (r AssignPackageRequest) ToCommand() commands.AssignPackageRequest {
	return commands.AssignPackageRequest{
		PackageTemplateID: r.PackageTemplateID,
		GrantedOverride:   r.GrantedOverride,
		ConsumedOverride:  r.ConsumedOverride,
		PaymentStatus:     r.PaymentStatus,
		ExpiresAt:         r.ExpiresAt,
		Notes:             r.Notes,
	}
}
