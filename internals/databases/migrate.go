// internals/databases/migrate.go
package database

import (
	"log"

	pkgModel "qodwa_backend/internals/features/billing/packages/model"
	pmModel "qodwa_backend/internals/features/billing/payment_methods/model"
	subModel "qodwa_backend/internals/features/billing/subscriptions/model"
	fsModel "qodwa_backend/internals/features/bookings/free_sessions/model"
	assignModel "qodwa_backend/internals/features/learning/assignments/model"
	classModel "qodwa_backend/internals/features/learning/classes/model"
	msgModel "qodwa_backend/internals/features/messaging/messages/model"
	authModel "qodwa_backend/internals/features/users/auth/model"
	userModel "qodwa_backend/internals/features/users/user/model"
)

// Migrate runs the schema migration. Opt-in via RUN_MIGRATIONS=true, normal
// deployments manage the schema outside the app.
func Migrate() {
	log.Println("[INFO] Running schema migration...")

	if err := DB.AutoMigrate(
		&userModel.UserModel{},
		&authModel.RefreshTokenModel{},
		&authModel.TokenBlacklistModel{},
		&authModel.PasswordResetTokenModel{},
		&pkgModel.PackageModel{},
		&subModel.SubscriptionModel{},
		&subModel.GatewayEventModel{},
		&pmModel.PaymentMethodModel{},
		&assignModel.TeacherConnectionModel{},
		&classModel.ClassSessionModel{},
		&classModel.TeacherEarningModel{},
		&fsModel.FreeSessionBookingModel{},
		&msgModel.MessageThreadModel{},
		&msgModel.MessageModel{},
	); err != nil {
		log.Fatalf("❌ migration failed: %v", err)
	}

	// Partial unique indexes backing the single-default and single-primary
	// invariants at the data layer, not just in application transactions.
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_payment_method_default_per_user
			ON payment_methods (payment_method_user_id)
			WHERE payment_method_is_default = TRUE AND payment_method_deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_teacher_connection_primary_per_student
			ON teacher_connections (teacher_connection_student_id)
			WHERE teacher_connection_is_primary = TRUE AND teacher_connection_deleted_at IS NULL`,
	}
	for _, stmt := range stmts {
		if err := DB.Exec(stmt).Error; err != nil {
			log.Fatalf("❌ index migration failed: %v", err)
		}
	}

	log.Println("✅ Schema migration complete")
}
