// internals/features/billing/subscriptions/controller/subscription_webhook_controller.go
package controller

import (
	"crypto/sha512"
	"encoding/hex"
	"log"
	"strings"

	"qodwa_backend/internals/features/billing/subscriptions/model"
	"qodwa_backend/internals/features/billing/subscriptions/service"
	helper "qodwa_backend/internals/helpers"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SubscriptionWebhookController struct {
	DB                *gorm.DB
	MidtransServerKey string
}

func NewSubscriptionWebhookController(db *gorm.DB, serverKey string) *SubscriptionWebhookController {
	return &SubscriptionWebhookController{DB: db, MidtransServerKey: serverKey}
}

type midtransNotif struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"` // capture, settlement, pending, deny, cancel, expire, failure
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"` // accept / challenge / deny
	TransactionID     string `json:"transaction_id"`
	SettlementTime    string `json:"settlement_time"`
}

// POST /api/payments/notification (no auth, signature-verified)
func (ctl *SubscriptionWebhookController) HandleNotification(c *fiber.Ctx) error {
	var notif midtransNotif
	if err := c.BodyParser(&notif); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}

	// Signature: SHA512(order_id + status_code + gross_amount + server_key)
	want := strings.ToLower(notif.SignatureKey)
	got := sha512sum(notif.OrderID + notif.StatusCode + notif.GrossAmount + ctl.MidtransServerKey)
	if want == "" || got != want {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid signature")
	}

	ctl.logEvent(c, notif, "received", "")

	switch notif.TransactionStatus {
	case "capture", "settlement":
		if notif.FraudStatus == "challenge" || notif.FraudStatus == "deny" {
			ctl.logEvent(c, notif, "ignored", "fraud_status="+notif.FraudStatus)
			return helper.JsonOK(c, "OK", fiber.Map{"status": "ignored"})
		}
		sub, err := service.ActivateByOrderID(ctl.DB.WithContext(c.Context()), notif.OrderID, c.Context().Time())
		if err != nil {
			// 200 either way so the gateway stops retrying mismatched orders
			log.Printf("[ERROR] webhook activation for order %s: %v", notif.OrderID, err)
			ctl.logEvent(c, notif, "failed", err.Error())
			return helper.JsonOK(c, "OK", fiber.Map{"status": "ignored"})
		}
		log.Printf("[INFO] ✅ subscription %s activated by order %s", sub.SubscriptionID, notif.OrderID)
		ctl.logEvent(c, notif, "processed", "")
		return helper.JsonOK(c, "OK", fiber.Map{
			"status":              "ok",
			"subscription_id":     sub.SubscriptionID,
			"subscription_status": sub.SubscriptionStatus,
		})

	case "deny", "cancel", "expire", "failure":
		res := ctl.DB.WithContext(c.Context()).
			Model(&model.SubscriptionModel{}).
			Where("subscription_gateway_order_id = ? AND subscription_status = ?", notif.OrderID, model.SubscriptionPending).
			Update("subscription_status", model.SubscriptionCancelled)
		if res.Error != nil {
			ctl.logEvent(c, notif, "failed", res.Error.Error())
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update subscription")
		}
		ctl.logEvent(c, notif, "processed", "")
		return helper.JsonOK(c, "OK", fiber.Map{"status": "ok"})

	default: // pending and other intermediate states
		ctl.logEvent(c, notif, "ignored", "")
		return helper.JsonOK(c, "OK", fiber.Map{"status": "ignored"})
	}
}

func (ctl *SubscriptionWebhookController) logEvent(c *fiber.Ctx, notif midtransNotif, status, errMsg string) {
	payload, _ := sonic.Marshal(notif)
	ev := model.GatewayEventModel{
		GatewayEventProvider:  "midtrans",
		GatewayEventType:      strPtr(notif.TransactionStatus),
		GatewayEventOrderID:   strPtr(notif.OrderID),
		GatewayEventReference: strPtr(notif.TransactionID),
		GatewayEventPayload:   datatypes.JSON(payload),
		GatewayEventSignature: strPtr(notif.SignatureKey),
		GatewayEventStatus:    status,
		GatewayEventError:     strPtr(errMsg),
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&ev).Error; err != nil {
		log.Printf("[ERROR] gateway event log: %v", err)
	}
}

func sha512sum(s string) string {
	h := sha512.Sum512([]byte(s))
	return hex.EncodeToString(h[:])
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
