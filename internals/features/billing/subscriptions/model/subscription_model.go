// internals/features/billing/subscriptions/model/subscription_model.go
package model

import (
	"database/sql/driver"
	"strings"
	"time"

	pkgModel "qodwa_backend/internals/features/billing/packages/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   ENUM: subscription_status_enum (must match the DB)
   ========================================================= */

type SubscriptionStatus string

const (
	SubscriptionPending   SubscriptionStatus = "PENDING"
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionPastDue   SubscriptionStatus = "PAST_DUE"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
	SubscriptionExpired   SubscriptionStatus = "EXPIRED"
)

func (s *SubscriptionStatus) Scan(value any) error {
	switch v := value.(type) {
	case string:
		*s = SubscriptionStatus(strings.ToUpper(strings.TrimSpace(v)))
	case []byte:
		*s = SubscriptionStatus(strings.ToUpper(strings.TrimSpace(string(v))))
	case nil:
		*s = ""
	default:
		*s = SubscriptionStatus(strings.ToUpper(strings.TrimSpace(v.(string))))
	}
	return nil
}
func (s SubscriptionStatus) Value() (driver.Value, error) {
	return strings.ToUpper(strings.TrimSpace(string(s))), nil
}

/* =========================================================
   MODEL: subscriptions
   ========================================================= */

type SubscriptionModel struct {
	// PK
	SubscriptionID uuid.UUID `gorm:"column:subscription_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"subscription_id"`

	// Relations
	SubscriptionStudentID uuid.UUID `gorm:"column:subscription_student_id;type:uuid;not null;index" json:"subscription_student_id"`
	SubscriptionPackageID uuid.UUID `gorm:"column:subscription_package_id;type:uuid;not null;index" json:"subscription_package_id"`

	// Progress within the current billing period
	SubscriptionClassesCompleted int `gorm:"column:subscription_classes_completed;not null;default:0" json:"subscription_classes_completed"`
	SubscriptionTotalClasses     int `gorm:"column:subscription_total_classes;not null"               json:"subscription_total_classes"`

	// Lifecycle
	SubscriptionStatus          SubscriptionStatus `gorm:"column:subscription_status;type:varchar(12);not null;default:'PENDING';index" json:"subscription_status"`
	SubscriptionAutoRenew       bool               `gorm:"column:subscription_auto_renew;not null;default:false" json:"subscription_auto_renew"`
	SubscriptionStartDate       *time.Time         `gorm:"column:subscription_start_date"        json:"subscription_start_date,omitempty"`
	SubscriptionEndDate         *time.Time         `gorm:"column:subscription_end_date"          json:"subscription_end_date,omitempty"`
	SubscriptionNextBillingDate *time.Time         `gorm:"column:subscription_next_billing_date;index" json:"subscription_next_billing_date,omitempty"`

	// Gateway
	SubscriptionGatewayOrderID *string `gorm:"column:subscription_gateway_order_id;type:varchar(64);index" json:"subscription_gateway_order_id,omitempty"`

	// Preload
	Package *pkgModel.PackageModel `gorm:"foreignKey:SubscriptionPackageID;references:PackageID" json:"package,omitempty"`

	// Audit
	SubscriptionCreatedAt time.Time      `gorm:"column:subscription_created_at;autoCreateTime" json:"subscription_created_at"`
	SubscriptionUpdatedAt time.Time      `gorm:"column:subscription_updated_at;autoUpdateTime" json:"subscription_updated_at"`
	SubscriptionDeletedAt gorm.DeletedAt `gorm:"column:subscription_deleted_at;index"          json:"subscription_deleted_at,omitempty"`
}

func (SubscriptionModel) TableName() string { return "subscriptions" }

// IsActiveAt reports whether the subscription entitles classes at t.
func (s *SubscriptionModel) IsActiveAt(t time.Time) bool {
	if s.SubscriptionStatus != SubscriptionActive {
		return false
	}
	if s.SubscriptionEndDate != nil && s.SubscriptionEndDate.Before(t) {
		return false
	}
	return true
}
