package service

import (
	"errors"
	"log"
	"time"

	subModel "qodwa_backend/internals/features/billing/subscriptions/model"
	"qodwa_backend/internals/features/learning/classes/model"
	entService "qodwa_backend/internals/features/learning/entitlement/service"
	userModel "qodwa_backend/internals/features/users/user/model"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// teacherSharePercent is the payout share of the per-class package price.
const teacherSharePercent = 70

/* =========================================================
   Schedule
========================================================= */

func Schedule(db *gorm.DB, teacherID, studentID uuid.UUID, at time.Time, notes *string) (*model.ClassSessionModel, error) {
	if at.Before(time.Now()) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Cannot schedule a class in the past")
	}

	var sess model.ClassSessionModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := requireConnection(tx, teacherID, studentID); err != nil {
			return err
		}

		sub, err := activeSubscription(tx, studentID)
		if err != nil {
			return err
		}

		snap, err := entService.LoadSnapshot(tx, studentID)
		if err != nil {
			return err
		}
		res := entService.Evaluate(snap, time.Now())
		if !res.CanStartSession {
			return fiber.NewError(fiber.StatusConflict, res.Reason)
		}

		duration := 30
		if sub.Package != nil {
			duration = sub.Package.PackageClassDurationMinutes
		}

		sess = model.ClassSessionModel{
			ClassSessionTeacherID:       teacherID,
			ClassSessionStudentID:       studentID,
			ClassSessionSubscriptionID:  sub.SubscriptionID,
			ClassSessionStatus:          model.ClassScheduled,
			ClassSessionScheduledAt:     &at,
			ClassSessionDurationMinutes: duration,
			ClassSessionNotes:           notes,
		}
		return tx.Create(&sess).Error
	})
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

/* =========================================================
   Start
========================================================= */

// Start moves a scheduled session to IN_PROGRESS. The expiry timestamp is
// written here so the server, not the client, decides when the class is over.
func Start(db *gorm.DB, teacherID, sessionID uuid.UUID) (*model.ClassSessionModel, error) {
	var sess model.ClassSessionModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockSession(tx, &sess, sessionID, teacherID); err != nil {
			return err
		}
		if sess.ClassSessionStatus != model.ClassScheduled {
			return fiber.NewError(fiber.StatusConflict, "Only a scheduled class can be started")
		}

		var teacher userModel.UserModel
		if err := tx.First(&teacher, "id = ?", teacherID).Error; err != nil {
			return err
		}
		if teacher.ZoomLink == nil || *teacher.ZoomLink == "" {
			return fiber.NewError(fiber.StatusConflict, "Set your meeting link before starting a class")
		}

		snap, err := entService.LoadSnapshot(tx, sess.ClassSessionStudentID)
		if err != nil {
			return err
		}
		// This session is part of the scheduled count; starting it converts
		// a scheduled slot, it does not consume a new one.
		if snap.SessionsScheduled > 0 {
			snap.SessionsScheduled--
		}
		res := entService.Evaluate(snap, time.Now())
		if !res.CanStartSession {
			return fiber.NewError(fiber.StatusConflict, res.Reason)
		}

		now := time.Now()
		expires := now.Add(time.Duration(sess.ClassSessionDurationMinutes) * time.Minute)
		if err := tx.Model(&sess).Updates(map[string]any{
			"class_session_status":       model.ClassInProgress,
			"class_session_started_at":   now,
			"class_session_expires_at":   expires,
			"class_session_meeting_link": *teacher.ZoomLink,
		}).Error; err != nil {
			return err
		}
		sess.ClassSessionStatus = model.ClassInProgress
		sess.ClassSessionStartedAt = &now
		sess.ClassSessionExpiresAt = &expires
		sess.ClassSessionMeetingLink = teacher.ZoomLink
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

/* =========================================================
   End (idempotent)
========================================================= */

// EndTransition decides what ending a class in the given state does. A class
// that already finished is a no-op, so the completion counter and the teacher
// earning are recorded exactly once no matter how often end is requested.
func EndTransition(status model.ClassSessionStatus) (shouldFinalize bool, err error) {
	switch status {
	case model.ClassCompleted, model.ClassExpired:
		return false, nil
	case model.ClassInProgress:
		return true, nil
	default:
		return false, fiber.NewError(fiber.StatusConflict, "Only a class in progress can be ended")
	}
}

// End completes an in-progress session. Ending an already completed session
// returns the existing record untouched, so counters never double-increment.
func End(db *gorm.DB, teacherID, sessionID uuid.UUID) (*model.ClassSessionModel, error) {
	var sess model.ClassSessionModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockSession(tx, &sess, sessionID, teacherID); err != nil {
			return err
		}
		shouldFinalize, terr := EndTransition(sess.ClassSessionStatus)
		if terr != nil {
			return terr
		}
		if !shouldFinalize {
			return nil // already ended
		}
		return finalize(tx, &sess, time.Now(), model.ClassCompleted)
	})
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

/* =========================================================
   Cancel
========================================================= */

func Cancel(db *gorm.DB, teacherID, sessionID uuid.UUID) (*model.ClassSessionModel, error) {
	var sess model.ClassSessionModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockSession(tx, &sess, sessionID, teacherID); err != nil {
			return err
		}
		if sess.ClassSessionStatus != model.ClassScheduled {
			return fiber.NewError(fiber.StatusConflict, "Only a scheduled class can be cancelled")
		}
		if err := tx.Model(&sess).Update("class_session_status", model.ClassCancelled).Error; err != nil {
			return err
		}
		sess.ClassSessionStatus = model.ClassCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

/* =========================================================
   Auto end (scheduler sweep)
========================================================= */

// AutoEndOverdue closes every in-progress session whose expiry has passed.
// Shares finalize with the manual path, so a racing manual end stays a no-op.
func AutoEndOverdue(db *gorm.DB, now time.Time) {
	var ids []uuid.UUID
	if err := db.Model(&model.ClassSessionModel{}).
		Where("class_session_status = ? AND class_session_expires_at <= ?", model.ClassInProgress, now).
		Pluck("class_session_id", &ids).Error; err != nil {
		log.Printf("[ERROR] auto-end sweep query: %v", err)
		return
	}
	if len(ids) == 0 {
		return
	}
	log.Printf("[INFO] auto-end sweep: %d overdue session(s)", len(ids))

	for _, id := range ids {
		err := db.Transaction(func(tx *gorm.DB) error {
			var sess model.ClassSessionModel
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&sess, "class_session_id = ?", id).Error; err != nil {
				return err
			}
			if shouldFinalize, _ := EndTransition(sess.ClassSessionStatus); !shouldFinalize {
				return nil // ended manually in the meantime
			}
			end := now
			if sess.ClassSessionExpiresAt != nil {
				end = *sess.ClassSessionExpiresAt
			}
			return finalize(tx, &sess, end, model.ClassExpired)
		})
		if err != nil {
			log.Printf("[ERROR] auto-end session %s: %v", id, err)
		}
	}
}

/* =========================================================
   Internals
========================================================= */

func lockSession(tx *gorm.DB, sess *model.ClassSessionModel, sessionID, teacherID uuid.UUID) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(sess, "class_session_id = ? AND class_session_teacher_id = ?", sessionID, teacherID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Class session not found")
	}
	return err
}

func activeSubscription(tx *gorm.DB, studentID uuid.UUID) (*subModel.SubscriptionModel, error) {
	var sub subModel.SubscriptionModel
	err := tx.Preload("Package").
		Where("subscription_student_id = ? AND subscription_status = ?", studentID, subModel.SubscriptionActive).
		Order("subscription_created_at DESC").
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusConflict, "Student has no active subscription")
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func requireConnection(tx *gorm.DB, teacherID, studentID uuid.UUID) error {
	var n int64
	if err := tx.Table("teacher_connections").
		Where("teacher_connection_teacher_id = ? AND teacher_connection_student_id = ? AND teacher_connection_deleted_at IS NULL",
			teacherID, studentID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusForbidden, "Student is not assigned to you")
	}
	return nil
}

// finalize ends the session, bumps the subscription counter and records the
// teacher earning. Callers guarantee the session is IN_PROGRESS under lock.
func finalize(tx *gorm.DB, sess *model.ClassSessionModel, endedAt time.Time, status model.ClassSessionStatus) error {
	if err := tx.Model(sess).Updates(map[string]any{
		"class_session_status":   status,
		"class_session_ended_at": endedAt,
	}).Error; err != nil {
		return err
	}
	sess.ClassSessionStatus = status
	sess.ClassSessionEndedAt = &endedAt

	var sub subModel.SubscriptionModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Package").
		First(&sub, "subscription_id = ?", sess.ClassSessionSubscriptionID).Error; err != nil {
		return err
	}
	if err := tx.Model(&sub).
		Update("subscription_classes_completed", gorm.Expr("subscription_classes_completed + 1")).Error; err != nil {
		return err
	}

	amount, currency := earningFor(&sub)
	earning := model.TeacherEarningModel{
		TeacherEarningTeacherID:      sess.ClassSessionTeacherID,
		TeacherEarningClassSessionID: sess.ClassSessionID,
		TeacherEarningAmountCents:    amount,
		TeacherEarningCurrency:       currency,
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&earning).Error; err != nil {
		return err
	}

	log.Printf("[INFO] class %s ended (%s), earning %d %s for teacher %s",
		sess.ClassSessionID, status, amount, currency, sess.ClassSessionTeacherID)
	return nil
}

func earningFor(sub *subModel.SubscriptionModel) (int, string) {
	if sub.Package == nil || sub.SubscriptionTotalClasses <= 0 {
		return 0, "USD"
	}
	perClass := sub.Package.PackagePriceCents / sub.SubscriptionTotalClasses
	return perClass * teacherSharePercent / 100, sub.Package.PackageCurrency
}
