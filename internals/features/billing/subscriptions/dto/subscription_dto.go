// internals/features/billing/subscriptions/dto/subscription_dto.go
package dto

import (
	"time"

	pkgModel "qodwa_backend/internals/features/billing/packages/model"
	"qodwa_backend/internals/features/billing/subscriptions/model"

	"github.com/google/uuid"
)

/* ===================== RESPONSES ===================== */

type SubscriptionResponse struct {
	SubscriptionID               uuid.UUID                `json:"subscription_id"`
	SubscriptionStudentID        uuid.UUID                `json:"subscription_student_id"`
	SubscriptionPackageID        uuid.UUID                `json:"subscription_package_id"`
	SubscriptionClassesCompleted int                      `json:"subscription_classes_completed"`
	SubscriptionTotalClasses     int                      `json:"subscription_total_classes"`
	SubscriptionStatus           model.SubscriptionStatus `json:"subscription_status"`
	SubscriptionAutoRenew        bool                     `json:"subscription_auto_renew"`
	SubscriptionStartDate        *time.Time               `json:"subscription_start_date,omitempty"`
	SubscriptionEndDate          *time.Time               `json:"subscription_end_date,omitempty"`
	SubscriptionNextBillingDate  *time.Time               `json:"subscription_next_billing_date,omitempty"`
	Package                      *pkgModel.PackageModel   `json:"package,omitempty"`
	SubscriptionCreatedAt        time.Time                `json:"subscription_created_at"`
}

func FromModel(m *model.SubscriptionModel) SubscriptionResponse {
	resp := SubscriptionResponse{
		SubscriptionID:               m.SubscriptionID,
		SubscriptionStudentID:        m.SubscriptionStudentID,
		SubscriptionPackageID:        m.SubscriptionPackageID,
		SubscriptionClassesCompleted: m.SubscriptionClassesCompleted,
		SubscriptionTotalClasses:     m.SubscriptionTotalClasses,
		SubscriptionStatus:           m.SubscriptionStatus,
		SubscriptionAutoRenew:        m.SubscriptionAutoRenew,
		SubscriptionStartDate:        m.SubscriptionStartDate,
		SubscriptionEndDate:          m.SubscriptionEndDate,
		SubscriptionNextBillingDate:  m.SubscriptionNextBillingDate,
		SubscriptionCreatedAt:        m.SubscriptionCreatedAt,
	}
	if m.Package != nil {
		resp.Package = m.Package
	}
	return resp
}

func FromModels(ms []model.SubscriptionModel) []SubscriptionResponse {
	out := make([]SubscriptionResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}

type CheckoutResponse struct {
	Subscription SubscriptionResponse `json:"subscription"`
	SnapToken    string               `json:"snap_token"`
	RedirectURL  string               `json:"redirect_url"`
}

/* ===================== REQUESTS ===================== */

type CheckoutRequest struct {
	PackageID uuid.UUID `json:"package_id" validate:"required"`
	AutoRenew bool      `json:"auto_renew"`
}

type ToggleAutoRenewRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}
