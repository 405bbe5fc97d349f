// internals/scheduler/scheduler.go
package scheduler

import (
	"log"
	"time"

	subService "qodwa_backend/internals/features/billing/subscriptions/service"
	classModel "qodwa_backend/internals/features/learning/classes/model"
	classService "qodwa_backend/internals/features/learning/classes/service"
	authModel "qodwa_backend/internals/features/users/auth/model"
	"qodwa_backend/internals/services/email"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Scheduler owns every recurring background job: the class auto-end sweep,
// subscription renewals and expiry, class reminders and blacklist cleanup.
type Scheduler struct {
	engine *cron.Cron
	db     *gorm.DB
}

func New(db *gorm.DB) *Scheduler {
	return &Scheduler{
		engine: cron.New(cron.WithLocation(time.UTC)),
		db:     db,
	}
}

func (s *Scheduler) Start() {
	mustAdd := func(spec string, name string, job func()) {
		if _, err := s.engine.AddFunc(spec, job); err != nil {
			log.Fatalf("[CRON] cannot register %s: %v", name, err)
		}
	}

	// Server-side class expiry. Runs every minute so an abandoned class never
	// stays open longer than a minute past its allotted duration.
	mustAdd("* * * * *", "auto-end sweep", func() {
		classService.AutoEndOverdue(s.db, time.Now())
	})

	// Charge due auto-renewals once per hour.
	mustAdd("5 * * * *", "renewal sweep", func() {
		subService.RunDueRenewals(s.db, time.Now())
	})

	// Close cancelled or lapsed subscriptions once their paid period is over.
	// Runs after the renewal sweep so a due renewal is charged first.
	mustAdd("15 * * * *", "expiry sweep", func() {
		subService.ExpireEnded(s.db, time.Now())
	})

	// Daily reminders for classes scheduled within the next 24 hours. The
	// fixed daily cadence keeps each class in exactly one reminder window.
	mustAdd("0 8 * * *", "class reminders", func() {
		s.sendClassReminders(time.Now())
	})

	// Expired blacklist entries only matter until their tokens expire anyway.
	mustAdd("30 3 * * *", "blacklist cleanup", func() {
		s.cleanupBlacklist(time.Now())
	})

	s.engine.Start()
	log.Println("[CRON] scheduler started")
}

func (s *Scheduler) Stop() {
	ctx := s.engine.Stop()
	<-ctx.Done()
	log.Println("[CRON] scheduler stopped")
}

func (s *Scheduler) sendClassReminders(now time.Time) {
	var sessions []classModel.ClassSessionModel
	if err := s.db.Preload("Student").Preload("Teacher").
		Where("class_session_status = ? AND class_session_scheduled_at >= ? AND class_session_scheduled_at < ?",
			classModel.ClassScheduled, now, now.Add(24*time.Hour)).
		Find(&sessions).Error; err != nil {
		log.Printf("[CRON] class reminder query: %v", err)
		return
	}
	if len(sessions) == 0 {
		return
	}
	log.Printf("[CRON] sending %d class reminder(s)", len(sessions))

	for i := range sessions {
		sess := &sessions[i]
		if sess.ClassSessionScheduledAt == nil {
			continue
		}
		when := sess.ClassSessionScheduledAt.Format("Mon, 02 Jan 2006 15:04 MST")

		var batch []*email.Message
		if sess.Student != nil {
			batch = append(batch, email.ClassReminder(sess.Student.Email, studentName(sess), when))
		}
		if sess.Teacher != nil {
			batch = append(batch, email.ClassReminder(sess.Teacher.Email, teacherName(sess), when))
		}
		email.Default.DispatchAll(batch)
	}
}

func (s *Scheduler) cleanupBlacklist(now time.Time) {
	res := s.db.Unscoped().
		Where("expired_at < ?", now).
		Delete(&authModel.TokenBlacklistModel{})
	if res.Error != nil {
		log.Printf("[CRON] blacklist cleanup: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("[CRON] removed %d expired blacklist token(s)", res.RowsAffected)
	}
}

func studentName(sess *classModel.ClassSessionModel) string {
	if sess.Student.FullName != nil && *sess.Student.FullName != "" {
		return *sess.Student.FullName
	}
	return sess.Student.UserName
}

func teacherName(sess *classModel.ClassSessionModel) string {
	if sess.Teacher.FullName != nil && *sess.Teacher.FullName != "" {
		return *sess.Teacher.FullName
	}
	return sess.Teacher.UserName
}
