package dto

import (
	"strings"

	"qodwa_backend/internals/features/billing/packages/model"

	"github.com/lib/pq"
)

//
// ========== CREATE ==========
//

type CreatePackageRequest struct {
	PackageTitle                string   `json:"package_title" validate:"required,min=3,max=120"`
	PackageDescription          *string  `json:"package_description" validate:"omitempty"`
	PackageLevel                *string  `json:"package_level" validate:"omitempty,max=40"`
	PackagePriceCents           int      `json:"package_price_cents" validate:"required,gt=0"`
	PackageOriginalPriceCents   *int     `json:"package_original_price_cents" validate:"omitempty,gt=0"`
	PackageCurrency             string   `json:"package_currency" validate:"omitempty,len=3"`
	PackageFrequency            string   `json:"package_frequency" validate:"omitempty,oneof=monthly quarterly yearly"`
	PackageClassDurationMinutes int      `json:"package_class_duration_minutes" validate:"omitempty,gt=0,lte=180"`
	PackageTotalClasses         int      `json:"package_total_classes" validate:"required,gt=0,lte=100"`
	PackageFeatures             []string `json:"package_features" validate:"omitempty,dive,min=1"`
	PackageIsPopular            *bool    `json:"package_is_popular" validate:"omitempty"`
	PackageSortOrder            *int     `json:"package_sort_order" validate:"omitempty"`
}

func (r CreatePackageRequest) ToModel() model.PackageModel {
	m := model.PackageModel{
		PackageTitle:                strings.TrimSpace(r.PackageTitle),
		PackageDescription:          r.PackageDescription,
		PackageLevel:                r.PackageLevel,
		PackagePriceCents:           r.PackagePriceCents,
		PackageOriginalPriceCents:   r.PackageOriginalPriceCents,
		PackageCurrency:             "USD",
		PackageFrequency:            model.FrequencyMonthly,
		PackageClassDurationMinutes: 30,
		PackageTotalClasses:         r.PackageTotalClasses,
		PackageFeatures:             pq.StringArray(r.PackageFeatures),
		PackageIsActive:             true,
	}
	if r.PackageCurrency != "" {
		m.PackageCurrency = strings.ToUpper(r.PackageCurrency)
	}
	if r.PackageFrequency != "" {
		m.PackageFrequency = model.SubscriptionFrequency(r.PackageFrequency)
	}
	if r.PackageClassDurationMinutes > 0 {
		m.PackageClassDurationMinutes = r.PackageClassDurationMinutes
	}
	if r.PackageIsPopular != nil {
		m.PackageIsPopular = *r.PackageIsPopular
	}
	if r.PackageSortOrder != nil {
		m.PackageSortOrder = *r.PackageSortOrder
	}
	return m
}

//
// ========== UPDATE / PATCH ==========
//
// PATCH note: pointer fields — nil = unchanged, non-nil = set.
// Pricing/terms of a package already referenced by subscriptions must not
// change; only presentation fields are patchable then (see controller).

type UpdatePackageRequest struct {
	PackageTitle                *string   `json:"package_title" validate:"omitempty,min=3,max=120"`
	PackageDescription          *string   `json:"package_description" validate:"omitempty"`
	PackageLevel                *string   `json:"package_level" validate:"omitempty,max=40"`
	PackagePriceCents           *int      `json:"package_price_cents" validate:"omitempty,gt=0"`
	PackageOriginalPriceCents   *int      `json:"package_original_price_cents" validate:"omitempty,gt=0"`
	PackageFrequency            *string   `json:"package_frequency" validate:"omitempty,oneof=monthly quarterly yearly"`
	PackageClassDurationMinutes *int      `json:"package_class_duration_minutes" validate:"omitempty,gt=0,lte=180"`
	PackageTotalClasses         *int      `json:"package_total_classes" validate:"omitempty,gt=0,lte=100"`
	PackageFeatures             *[]string `json:"package_features" validate:"omitempty,dive,min=1"`
	PackageIsActive             *bool     `json:"package_is_active" validate:"omitempty"`
	PackageIsPopular            *bool     `json:"package_is_popular" validate:"omitempty"`
	PackageSortOrder            *int      `json:"package_sort_order" validate:"omitempty"`
}

// TouchesTerms reports whether the patch changes pricing/terms fields
// that are frozen once the package has subscribers.
func (r UpdatePackageRequest) TouchesTerms() bool {
	return r.PackagePriceCents != nil ||
		r.PackageFrequency != nil ||
		r.PackageClassDurationMinutes != nil ||
		r.PackageTotalClasses != nil
}

func (r UpdatePackageRequest) ApplyToModel(m *model.PackageModel) {
	if r.PackageTitle != nil {
		m.PackageTitle = strings.TrimSpace(*r.PackageTitle)
	}
	if r.PackageDescription != nil {
		m.PackageDescription = r.PackageDescription
	}
	if r.PackageLevel != nil {
		m.PackageLevel = r.PackageLevel
	}
	if r.PackagePriceCents != nil {
		m.PackagePriceCents = *r.PackagePriceCents
	}
	if r.PackageOriginalPriceCents != nil {
		m.PackageOriginalPriceCents = r.PackageOriginalPriceCents
	}
	if r.PackageFrequency != nil {
		m.PackageFrequency = model.SubscriptionFrequency(*r.PackageFrequency)
	}
	if r.PackageClassDurationMinutes != nil {
		m.PackageClassDurationMinutes = *r.PackageClassDurationMinutes
	}
	if r.PackageTotalClasses != nil {
		m.PackageTotalClasses = *r.PackageTotalClasses
	}
	if r.PackageFeatures != nil {
		m.PackageFeatures = pq.StringArray(*r.PackageFeatures)
	}
	if r.PackageIsActive != nil {
		m.PackageIsActive = *r.PackageIsActive
	}
	if r.PackageIsPopular != nil {
		m.PackageIsPopular = *r.PackageIsPopular
	}
	if r.PackageSortOrder != nil {
		m.PackageSortOrder = *r.PackageSortOrder
	}
}
