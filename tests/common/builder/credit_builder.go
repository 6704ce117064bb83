//go:build unit || e2e

package builder

import (
	"time"

	reqdto "studio-ops/internal/handler/dto/request"
	"studio-ops/internal/usecase/queries"

	"github.com/google/uuid"
)

type AssignmentBuilder struct {
	ClientID          uuid.UUID
	PackageTemplateID *uuid.UUID
	PackageName       *string
	GrantedServings   *int32
	Consumed          int32
	Remaining         int32
	PaymentStatus     string
}

func NewAssignmentBuilder() *AssignmentBuilder {
	pkgID := uuid.New()
	pkgName := "Standard Plan"
	granted := int32(10)
	return &AssignmentBuilder{
		ClientID:          uuid.New(),
		PackageTemplateID: &pkgID,
		PackageName:       &pkgName,
		GrantedServings:   &granted,
		Consumed:          0,
		Remaining:         10,
		PaymentStatus:     "paid",
	}
}

func (b *AssignmentBuilder) WithClientID(id uuid.UUID) *AssignmentBuilder {
	b.ClientID = id
	return b
}

func (b *AssignmentBuilder) WithoutPackage() *AssignmentBuilder {
	b.PackageTemplateID = nil
	b.PackageName = nil
	b.GrantedServings = nil
	return b
}

func (b *AssignmentBuilder) BuildDTO() reqdto.AssignPackageRequest {
	return reqdto.AssignPackageRequest{
		PackageTemplateID: b.PackageTemplateID,
		PaymentStatus:     b.PaymentStatus,
	}
}

func (b *AssignmentBuilder) BuildView() *queries.AssignmentView {
	now := time.Now()
	return &queries.AssignmentView{
		ID:                   uuid.New(),
		ClientID:             b.ClientID,
		PackageTemplateID:    b.PackageTemplateID,
		PackageName:          b.PackageName,
		GrantedServings:      b.GrantedServings,
		ConsumedAtAssignment: b.Consumed,
		RemainingServings:    b.Remaining,
		PaymentStatus:        b.PaymentStatus,
		CreatedAt:            now,
	}
}

type ClientCreditBuilder struct {
	ClientID          uuid.UUID
	ClientName        string
	RemainingServings int32
	RemainingImages   *int32
}

func NewClientCreditBuilder() *ClientCreditBuilder {
	images := int32(20)
	return &ClientCreditBuilder{
		ClientID:          uuid.New(),
		ClientName:        "Umami Kitchen",
		RemainingServings: 10,
		RemainingImages:   &images,
	}
}

func (b *ClientCreditBuilder) BuildView() *queries.ClientCreditView {
	now := time.Now()
	return &queries.ClientCreditView{
		Client: &queries.ClientView{
			ID:        b.ClientID,
			Name:      b.ClientName,
			Email:     "owner@example.com",
			CreatedAt: now,
		},
		State: &queries.CreditStateView{
			ClientID:          b.ClientID,
			RemainingServings: b.RemainingServings,
			RemainingImages:   b.RemainingImages,
			UpdatedAt:         now,
		},
		ActiveAssignment: NewAssignmentBuilder().WithClientID(b.ClientID).BuildView(),
	}
}

type PackageBuilder struct {
	Name            string
	GrantedServings int32
	GrantedImages   *int32
	Active          bool
}

func NewPackageBuilder() *PackageBuilder {
	images := int32(20)
	return &PackageBuilder{
		Name:            "Standard Plan",
		GrantedServings: 10,
		GrantedImages:   &images,
		Active:          true,
	}
}

func (b *PackageBuilder) WithName(name string) *PackageBuilder {
	b.Name = name
	return b
}

func (b *PackageBuilder) BuildView() *queries.PackageView {
	now := time.Now()
	return &queries.PackageView{
		ID:              uuid.New(),
		Name:            b.Name,
		GrantedServings: b.GrantedServings,
		GrantedImages:   b.GrantedImages,
		PriceCents:      98000,
		Active:          b.Active,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
