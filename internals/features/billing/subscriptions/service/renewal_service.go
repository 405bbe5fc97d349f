package service

import (
	"log"
	"time"

	pmModel "qodwa_backend/internals/features/billing/payment_methods/model"
	"qodwa_backend/internals/features/billing/subscriptions/model"
	userModel "qodwa_backend/internals/features/users/user/model"
	"qodwa_backend/internals/services/email"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/* =========================================================
   Renewal policy
========================================================= */

// RenewalDue decides whether a subscription should be charged now.
// Kept pure so the policy is testable without a database.
func RenewalDue(status model.SubscriptionStatus, autoRenew bool, nextBilling *time.Time, now time.Time) bool {
	if status != model.SubscriptionActive {
		return false
	}
	if !autoRenew {
		return false
	}
	if nextBilling == nil {
		return false
	}
	return !nextBilling.After(now)
}

/* =========================================================
   Renewal sweep (invoked by the scheduler)
========================================================= */

// RunDueRenewals charges every due auto-renewing subscription against the
// student's default payment method. Failures move the subscription to
// PAST_DUE instead of aborting the sweep.
func RunDueRenewals(db *gorm.DB, now time.Time) {
	var due []model.SubscriptionModel
	if err := db.Preload("Package").
		Where("subscription_status = ? AND subscription_auto_renew = TRUE AND subscription_next_billing_date <= ?",
			model.SubscriptionActive, now).
		Find(&due).Error; err != nil {
		log.Printf("[ERROR] renewal sweep query: %v", err)
		return
	}
	if len(due) == 0 {
		return
	}
	log.Printf("[INFO] renewal sweep: %d subscription(s) due", len(due))

	for i := range due {
		if err := renewOne(db, due[i].SubscriptionID, now); err != nil {
			log.Printf("[ERROR] renewal for subscription %s: %v", due[i].SubscriptionID, err)
		}
	}
}

func renewOne(db *gorm.DB, subscriptionID uuid.UUID, now time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var sub model.SubscriptionModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Package").
			First(&sub, "subscription_id = ?", subscriptionID).Error; err != nil {
			return err
		}
		if !RenewalDue(sub.SubscriptionStatus, sub.SubscriptionAutoRenew, sub.SubscriptionNextBillingDate, now) {
			return nil // state changed since the sweep selected it
		}

		var student userModel.UserModel
		if err := tx.First(&student, "id = ?", sub.SubscriptionStudentID).Error; err != nil {
			return err
		}

		pkgTitle := "your package"
		amount := 0
		currency := "USD"
		months := 1
		if sub.Package != nil {
			pkgTitle = sub.Package.PackageTitle
			amount = sub.Package.PackagePriceCents
			currency = sub.Package.PackageCurrency
			months = PeriodMonths(sub.Package.PackageFrequency)
		}

		var method pmModel.PaymentMethodModel
		err := tx.Where("payment_method_user_id = ? AND payment_method_is_default = TRUE AND payment_method_is_active = TRUE",
			sub.SubscriptionStudentID).
			First(&method).Error
		if err != nil {
			return markPastDue(tx, &sub, &student, pkgTitle, "no default payment method on file")
		}

		orderID := NewOrderID(sub.SubscriptionID.String())
		if _, err := ChargeSavedCard(orderID, amount, method.PaymentMethodGatewayToken); err != nil {
			return markPastDue(tx, &sub, &student, pkgTitle, err.Error())
		}

		next := now.AddDate(0, months, 0)
		if err := tx.Model(&sub).Updates(map[string]any{
			"subscription_classes_completed": 0,
			"subscription_next_billing_date": next,
			"subscription_end_date":          next,
			"subscription_gateway_order_id":  orderID,
		}).Error; err != nil {
			return err
		}

		log.Printf("[INFO] ✅ renewed subscription %s (order %s)", sub.SubscriptionID, orderID)
		notifyRenewalCharged(&student, pkgTitle, amount, currency)
		return nil
	})
}

/* =========================================================
   Expiry sweep (invoked by the scheduler)
========================================================= */

// ExpiryDue decides whether a subscription's paid period is over.
// Auto-renewing subscriptions are left to the renewal sweep, which either
// advances the end date or moves them to PAST_DUE.
func ExpiryDue(status model.SubscriptionStatus, autoRenew bool, endDate *time.Time, now time.Time) bool {
	if status != model.SubscriptionActive {
		return false
	}
	if autoRenew {
		return false
	}
	if endDate == nil {
		return false
	}
	return !endDate.After(now)
}

// ExpireEnded closes every non-renewing subscription whose paid period has
// passed, including cancelled ones kept ACTIVE until their end date.
func ExpireEnded(db *gorm.DB, now time.Time) {
	res := db.Model(&model.SubscriptionModel{}).
		Where("subscription_status = ? AND subscription_auto_renew = FALSE AND subscription_end_date <= ?",
			model.SubscriptionActive, now).
		Update("subscription_status", model.SubscriptionExpired)
	if res.Error != nil {
		log.Printf("[ERROR] expiry sweep: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("[INFO] expiry sweep: %d subscription(s) expired", res.RowsAffected)
	}
}

func markPastDue(tx *gorm.DB, sub *model.SubscriptionModel, student *userModel.UserModel, pkgTitle, reason string) error {
	if err := tx.Model(sub).Update("subscription_status", model.SubscriptionPastDue).Error; err != nil {
		return err
	}
	log.Printf("[ERROR] ⚠️ subscription %s past due: %s", sub.SubscriptionID, reason)
	email.Default.Dispatch(email.RenewalFailed(student.Email, displayName(student), pkgTitle))
	return nil
}
