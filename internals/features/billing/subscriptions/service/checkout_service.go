package service

import (
	"errors"
	"log"
	"time"

	pkgModel "qodwa_backend/internals/features/billing/packages/model"
	"qodwa_backend/internals/features/billing/subscriptions/model"
	userModel "qodwa_backend/internals/features/users/user/model"
	"qodwa_backend/internals/services/email"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/* =========================================================
   Checkout: create a PENDING subscription + Snap token
========================================================= */

type CheckoutResult struct {
	Subscription *model.SubscriptionModel
	SnapToken    string
	RedirectURL  string
}

func Checkout(db *gorm.DB, studentID, packageID uuid.UUID, autoRenew bool) (*CheckoutResult, error) {
	var (
		sub     model.SubscriptionModel
		pkg     pkgModel.PackageModel
		student userModel.UserModel
		orderID string
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pkg, "package_id = ?", packageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Package not found")
			}
			return err
		}
		if !pkg.PackageIsActive {
			return fiber.NewError(fiber.StatusConflict, "Package is no longer available")
		}

		// A student keeps at most one open subscription at a time.
		var open int64
		if err := tx.Model(&model.SubscriptionModel{}).
			Where("subscription_student_id = ? AND subscription_status IN ?",
				studentID, []string{string(model.SubscriptionPending), string(model.SubscriptionActive), string(model.SubscriptionPastDue)}).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return fiber.NewError(fiber.StatusConflict, "You already have an open subscription")
		}

		if err := tx.First(&student, "id = ?", studentID).Error; err != nil {
			return err
		}

		sub = model.SubscriptionModel{
			SubscriptionStudentID:    studentID,
			SubscriptionPackageID:    pkg.PackageID,
			SubscriptionTotalClasses: pkg.PackageTotalClasses,
			SubscriptionStatus:       model.SubscriptionPending,
			SubscriptionAutoRenew:    autoRenew,
		}
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}

		orderID = NewOrderID(sub.SubscriptionID.String())
		sub.SubscriptionGatewayOrderID = &orderID
		return tx.Model(&sub).Update("subscription_gateway_order_id", orderID).Error
	})
	if err != nil {
		return nil, err
	}

	// Gateway round trip after commit. Holding row locks across an external
	// HTTP call would stall every other request touching those rows.
	token, url, err := GenerateSnapToken(orderID, pkg.PackagePriceCents, pkg.PackageTitle, CustomerInput{
		FirstName: student.UserName,
		Email:     student.Email,
	})
	if err != nil {
		log.Printf("[ERROR] snap token for order %s: %v", orderID, err)
		if derr := db.Model(&sub).Updates(map[string]any{
			"subscription_status":   model.SubscriptionCancelled,
			"subscription_end_date": time.Now(),
		}).Error; derr != nil {
			log.Printf("[ERROR] closing subscription %s after token failure: %v", sub.SubscriptionID, derr)
		}
		return nil, fiber.NewError(fiber.StatusBadGateway, "Payment gateway is unavailable, try again later")
	}
	return &CheckoutResult{Subscription: &sub, SnapToken: token, RedirectURL: url}, nil
}

/* =========================================================
   Activation (called by the gateway webhook)
========================================================= */

// PeriodMonths maps a billing frequency to its length in months.
func PeriodMonths(freq pkgModel.SubscriptionFrequency) int {
	switch freq {
	case pkgModel.FrequencyQuarterly:
		return 3
	case pkgModel.FrequencyYearly:
		return 12
	default:
		return 1
	}
}

// PeriodEnd returns the exclusive end of a billing period starting at from.
func PeriodEnd(from time.Time, freq pkgModel.SubscriptionFrequency) time.Time {
	return from.AddDate(0, PeriodMonths(freq), 0)
}

// ActivateByOrderID flips a PENDING subscription to ACTIVE once the gateway
// reports a settled payment. Re-delivery of the same notification is a no-op.
func ActivateByOrderID(db *gorm.DB, orderID string, now time.Time) (*model.SubscriptionModel, error) {
	var sub model.SubscriptionModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Package").
			First(&sub, "subscription_gateway_order_id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Subscription not found for order")
			}
			return err
		}
		if sub.SubscriptionStatus == model.SubscriptionActive {
			return nil // already processed
		}
		if sub.SubscriptionStatus != model.SubscriptionPending && sub.SubscriptionStatus != model.SubscriptionPastDue {
			return fiber.NewError(fiber.StatusConflict, "Subscription is not awaiting payment")
		}

		freq := pkgModel.FrequencyMonthly
		if sub.Package != nil {
			freq = sub.Package.PackageFrequency
		}
		next := PeriodEnd(now, freq)

		updates := map[string]any{
			"subscription_status":            model.SubscriptionActive,
			"subscription_next_billing_date": next,
			"subscription_end_date":          next,
		}
		if sub.SubscriptionStartDate == nil {
			updates["subscription_start_date"] = now
		}
		if err := tx.Model(&sub).Updates(updates).Error; err != nil {
			return err
		}
		sub.SubscriptionStatus = model.SubscriptionActive
		sub.SubscriptionNextBillingDate = &next
		sub.SubscriptionEndDate = &next
		if sub.SubscriptionStartDate == nil {
			sub.SubscriptionStartDate = &now
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

/* =========================================================
   Cancellation
========================================================= */

// CancelOutcome decides the state a cancelled subscription moves to. A paid
// period is kept: an ACTIVE subscription stays ACTIVE with auto renewal off
// and an end date at its next billing date, then expires via the sweep.
// Anything not inside a paid period closes immediately.
func CancelOutcome(status model.SubscriptionStatus, nextBilling *time.Time, now time.Time) (model.SubscriptionStatus, time.Time) {
	if status == model.SubscriptionActive && nextBilling != nil && nextBilling.After(now) {
		return model.SubscriptionActive, *nextBilling
	}
	return model.SubscriptionCancelled, now
}

// Cancel turns off auto renewal and closes the subscription at the end of the
// paid period. Entitlement already granted for the period is kept: the
// subscription stays ACTIVE until its end date, which ExpireEnded enforces.
func Cancel(db *gorm.DB, studentID, subscriptionID uuid.UUID) (*model.SubscriptionModel, error) {
	var sub model.SubscriptionModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&sub, "subscription_id = ? AND subscription_student_id = ?", subscriptionID, studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Subscription not found")
			}
			return err
		}
		if sub.SubscriptionStatus == model.SubscriptionCancelled || sub.SubscriptionStatus == model.SubscriptionExpired {
			return fiber.NewError(fiber.StatusConflict, "Subscription is already closed")
		}

		status, end := CancelOutcome(sub.SubscriptionStatus, sub.SubscriptionNextBillingDate, time.Now())
		if err := tx.Model(&sub).Updates(map[string]any{
			"subscription_status":     status,
			"subscription_auto_renew": false,
			"subscription_end_date":   end,
		}).Error; err != nil {
			return err
		}
		sub.SubscriptionStatus = status
		sub.SubscriptionAutoRenew = false
		sub.SubscriptionEndDate = &end
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func notifyRenewalCharged(student *userModel.UserModel, pkgTitle string, amountCents int, currency string) {
	email.Default.Dispatch(email.RenewalCharged(student.Email, displayName(student), pkgTitle, amountCents, currency))
}

func displayName(u *userModel.UserModel) string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.UserName
}
