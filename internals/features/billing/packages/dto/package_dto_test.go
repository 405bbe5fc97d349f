package dto

import (
	"testing"

	"qodwa_backend/internals/features/billing/packages/model"

	"github.com/stretchr/testify/assert"
)

func TestCreatePackageRequest_ToModelDefaults(t *testing.T) {
	m := CreatePackageRequest{
		PackageTitle:        "  Quran Basics  ",
		PackagePriceCents:   4900,
		PackageTotalClasses: 8,
	}.ToModel()

	assert.Equal(t, "Quran Basics", m.PackageTitle)
	assert.Equal(t, "USD", m.PackageCurrency)
	assert.Equal(t, model.FrequencyMonthly, m.PackageFrequency)
	assert.Equal(t, 30, m.PackageClassDurationMinutes)
	assert.True(t, m.PackageIsActive)
}

func TestUpdatePackageRequest_TouchesTerms(t *testing.T) {
	title := "New title"
	assert.False(t, UpdatePackageRequest{PackageTitle: &title}.TouchesTerms())

	price := 5900
	assert.True(t, UpdatePackageRequest{PackagePriceCents: &price}.TouchesTerms())

	freq := "yearly"
	assert.True(t, UpdatePackageRequest{PackageFrequency: &freq}.TouchesTerms())

	total := 12
	assert.True(t, UpdatePackageRequest{PackageTotalClasses: &total}.TouchesTerms())

	duration := 45
	assert.True(t, UpdatePackageRequest{PackageClassDurationMinutes: &duration}.TouchesTerms())
}
