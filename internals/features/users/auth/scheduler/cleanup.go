package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	authRepo "sciedu_backend/internals/features/users/auth/repository"
)

// StartBlacklistCleanupScheduler hapus entry blacklist yang sudah lewat masa
// berlaku tokennya, tiap jam.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			n, err := authRepo.DeleteExpiredBlacklistEntries(db)
			if err != nil {
				log.Printf("[ERROR] cleanup blacklist: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("[INFO] cleanup blacklist: %d token kadaluarsa dihapus", n)
			}
		}
	}()
}
