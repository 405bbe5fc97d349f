// internals/features/learning/entitlement/service/loader.go
package service

import (
	"errors"
	"time"

	subModel "qodwa_backend/internals/features/billing/subscriptions/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoadSnapshot collects the entitlement inputs for one student.
// A student without an active subscription is a valid, empty snapshot.
func LoadSnapshot(db *gorm.DB, studentID uuid.UUID) (Snapshot, error) {
	var snap Snapshot

	var sub subModel.SubscriptionModel
	err := db.Preload("Package").
		Where("subscription_student_id = ? AND subscription_status = ?", studentID, subModel.SubscriptionActive).
		Where("subscription_end_date IS NULL OR subscription_end_date > ?", time.Now()).
		Order("subscription_created_at DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return snap, nil
		}
		return snap, err
	}

	snap.HasActiveSubscription = true
	snap.SessionsTotal = sub.SubscriptionTotalClasses
	snap.SessionsUsed = sub.SubscriptionClassesCompleted
	snap.SubscriptionEndDate = sub.SubscriptionEndDate
	if sub.Package != nil {
		snap.PackageTitle = sub.Package.PackageTitle
	}

	var scheduled int64
	if err := db.Table("class_sessions").
		Where("class_session_student_id = ? AND class_session_status IN ? AND class_session_deleted_at IS NULL",
			studentID, SlotHoldingStatuses()).
		Count(&scheduled).Error; err != nil {
		return snap, err
	}
	snap.SessionsScheduled = int(scheduled)

	return snap, nil
}
