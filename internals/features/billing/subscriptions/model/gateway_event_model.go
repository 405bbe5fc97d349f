// internals/features/billing/subscriptions/model/gateway_event_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GatewayEventModel keeps a raw copy of every payment gateway callback so
// webhook processing stays auditable and replayable.
type GatewayEventModel struct {
	GatewayEventID uuid.UUID `gorm:"column:gateway_event_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"gateway_event_id"`

	GatewayEventSubscriptionID *uuid.UUID `gorm:"column:gateway_event_subscription_id;type:uuid;index" json:"gateway_event_subscription_id,omitempty"`

	GatewayEventProvider  string  `gorm:"column:gateway_event_provider;type:varchar(20);not null;default:'midtrans'" json:"gateway_event_provider"`
	GatewayEventType      *string `gorm:"column:gateway_event_type;type:varchar(32)"        json:"gateway_event_type,omitempty"`
	GatewayEventOrderID   *string `gorm:"column:gateway_event_order_id;type:varchar(64);index" json:"gateway_event_order_id,omitempty"`
	GatewayEventReference *string `gorm:"column:gateway_event_reference;type:varchar(64)"   json:"gateway_event_reference,omitempty"`

	GatewayEventPayload   datatypes.JSON `gorm:"column:gateway_event_payload;type:jsonb"     json:"gateway_event_payload,omitempty"`
	GatewayEventSignature *string        `gorm:"column:gateway_event_signature;type:varchar(160)" json:"-"`

	GatewayEventStatus string  `gorm:"column:gateway_event_status;type:varchar(12);not null;default:'received'" json:"gateway_event_status"`
	GatewayEventError  *string `gorm:"column:gateway_event_error" json:"gateway_event_error,omitempty"`

	GatewayEventCreatedAt time.Time      `gorm:"column:gateway_event_created_at;autoCreateTime" json:"gateway_event_created_at"`
	GatewayEventUpdatedAt time.Time      `gorm:"column:gateway_event_updated_at;autoUpdateTime" json:"gateway_event_updated_at"`
	GatewayEventDeletedAt gorm.DeletedAt `gorm:"column:gateway_event_deleted_at;index"          json:"gateway_event_deleted_at,omitempty"`
}

func (GatewayEventModel) TableName() string { return "gateway_events" }
