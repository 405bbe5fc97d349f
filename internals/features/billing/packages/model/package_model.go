// internals/features/billing/packages/model/package_model.go
package model

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

/* =========================================================
   ENUM: subscription_frequency_enum (must match the DB)
   ========================================================= */

type SubscriptionFrequency string

const (
	FrequencyMonthly   SubscriptionFrequency = "monthly"
	FrequencyQuarterly SubscriptionFrequency = "quarterly"
	FrequencyYearly    SubscriptionFrequency = "yearly"
)

func (s *SubscriptionFrequency) Scan(value any) error {
	switch v := value.(type) {
	case string:
		*s = SubscriptionFrequency(strings.ToLower(strings.TrimSpace(v)))
	case []byte:
		*s = SubscriptionFrequency(strings.ToLower(strings.TrimSpace(string(v))))
	case nil:
		*s = ""
	default:
		*s = SubscriptionFrequency(strings.ToLower(strings.TrimSpace(v.(string))))
	}
	return nil
}
func (s SubscriptionFrequency) Value() (driver.Value, error) {
	return strings.ToLower(strings.TrimSpace(string(s))), nil
}

/* =========================================================
   MODEL: packages
   ========================================================= */

type PackageModel struct {
	// PK
	PackageID uuid.UUID `gorm:"column:package_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"package_id"`

	// Content
	PackageTitle       string  `gorm:"column:package_title;type:varchar(120);not null" json:"package_title"`
	PackageDescription *string `gorm:"column:package_description"                      json:"package_description,omitempty"`
	PackageLevel       *string `gorm:"column:package_level;type:varchar(40)"           json:"package_level,omitempty"`

	// Pricing (minor units)
	PackagePriceCents         int    `gorm:"column:package_price_cents;not null"          json:"package_price_cents"`
	PackageOriginalPriceCents *int   `gorm:"column:package_original_price_cents"          json:"package_original_price_cents,omitempty"`
	PackageCurrency           string `gorm:"column:package_currency;type:varchar(3);not null;default:'USD'" json:"package_currency"`

	// Terms
	PackageFrequency            SubscriptionFrequency `gorm:"column:package_frequency;type:varchar(12);not null;default:'monthly'" json:"package_frequency"`
	PackageClassDurationMinutes int                   `gorm:"column:package_class_duration_minutes;not null;default:30"            json:"package_class_duration_minutes"`
	PackageTotalClasses         int                   `gorm:"column:package_total_classes;not null"                                json:"package_total_classes"`

	// Presentation
	PackageFeatures  pq.StringArray `gorm:"column:package_features;type:text[]"            json:"package_features,omitempty"`
	PackageIsActive  bool           `gorm:"column:package_is_active;not null;default:true" json:"package_is_active"`
	PackageIsPopular bool           `gorm:"column:package_is_popular;not null;default:false" json:"package_is_popular"`
	PackageSortOrder int            `gorm:"column:package_sort_order;not null;default:0"   json:"package_sort_order"`

	// Audit
	PackageCreatedAt time.Time      `gorm:"column:package_created_at;autoCreateTime" json:"package_created_at"`
	PackageUpdatedAt time.Time      `gorm:"column:package_updated_at;autoUpdateTime" json:"package_updated_at"`
	PackageDeletedAt gorm.DeletedAt `gorm:"column:package_deleted_at;index"          json:"package_deleted_at,omitempty"`
}

func (PackageModel) TableName() string { return "packages" }
