package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/repositories"
)

// CronService runs scheduled background jobs: the nightly subscription
// expiry sweep and the expired refresh token purge.
type CronService struct {
	cron             *cron.Cron
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(userRepo repositories.UserRepository, refreshTokenRepo repositories.RefreshTokenRepository) *CronService {
	return &CronService{
		cron:             cron.New(),
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// Start registers the jobs and launches the scheduler. Both jobs also
// run once at startup so a server that was down over midnight catches
// up immediately.
func (s *CronService) Start() {
	// Subscription sweep at 00:05 daily
	s.cron.AddFunc("5 0 * * *", s.expireSubscriptions)

	// Refresh token purge at 03:00 daily
	s.cron.AddFunc("0 3 * * *", s.purgeRefreshTokens)

	s.cron.Start()
	log.Println("🚀 CronService started")

	go s.expireSubscriptions()
	go s.purgeRefreshTokens()
}

// Stop gracefully stops the scheduler, waiting for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) expireSubscriptions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.userRepo.ExpireSubscriptions(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Subscription sweep error: %v", err)
		return
	}
	if n > 0 {
		log.Printf("✅ Subscription sweep: %d subscription(s) expired", n)
	}
}

func (s *CronService) purgeRefreshTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Refresh token purge error: %v", err)
	}
}
