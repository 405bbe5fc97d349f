// internals/features/billing/payment_methods/model/payment_method_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   MODEL: payment_methods
   At most one is_default=TRUE per user — enforced by a partial
   unique index plus the clear-then-set transaction in the service.
   ========================================================= */

type PaymentMethodModel struct {
	// PK
	PaymentMethodID uuid.UUID `gorm:"column:payment_method_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"payment_method_id"`

	// Owner
	PaymentMethodUserID uuid.UUID `gorm:"column:payment_method_user_id;type:uuid;not null;index" json:"payment_method_user_id"`

	// Gateway token (never the PAN)
	PaymentMethodGatewayToken string `gorm:"column:payment_method_gateway_token;type:varchar(128);not null" json:"-"`

	// Display
	PaymentMethodBrand    string `gorm:"column:payment_method_brand;type:varchar(20);not null"  json:"payment_method_brand"`
	PaymentMethodLast4    string `gorm:"column:payment_method_last4;type:varchar(4);not null"   json:"payment_method_last4"`
	PaymentMethodExpMonth int    `gorm:"column:payment_method_exp_month;not null"               json:"payment_method_exp_month"`
	PaymentMethodExpYear  int    `gorm:"column:payment_method_exp_year;not null"                json:"payment_method_exp_year"`

	// Flags
	PaymentMethodIsDefault bool `gorm:"column:payment_method_is_default;not null;default:false;index" json:"payment_method_is_default"`
	PaymentMethodIsActive  bool `gorm:"column:payment_method_is_active;not null;default:true"         json:"payment_method_is_active"`

	// Audit
	PaymentMethodCreatedAt time.Time      `gorm:"column:payment_method_created_at;autoCreateTime" json:"payment_method_created_at"`
	PaymentMethodUpdatedAt time.Time      `gorm:"column:payment_method_updated_at;autoUpdateTime" json:"payment_method_updated_at"`
	PaymentMethodDeletedAt gorm.DeletedAt `gorm:"column:payment_method_deleted_at;index"          json:"payment_method_deleted_at,omitempty"`
}

func (PaymentMethodModel) TableName() string { return "payment_methods" }
