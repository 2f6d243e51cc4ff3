package background

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	publisher "github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/kafka"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/mailer"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/ratelimit"
)

// stalePendingAge is how long a pending donation may sit before the sweep
// cancels it (abandoned checkout).
const stalePendingAge = 24 * time.Hour

type BackgroundTasks struct {
	UserRepo     domain.UserRepository
	AdminCodes   domain.AdminCodeRepository
	DonationRepo domain.DonationRepository
	RateLimiter  *ratelimit.Registry
	Subscriber   *publisher.DefaultKafkaSubscriber
	Mailer       mailer.Mailer
}

func NewBackgroundTasks(
	userRepo domain.UserRepository,
	adminCodes domain.AdminCodeRepository,
	donationRepo domain.DonationRepository,
	limiter *ratelimit.Registry,
	subscriber *publisher.DefaultKafkaSubscriber,
	mail mailer.Mailer,
) *BackgroundTasks {
	return &BackgroundTasks{
		UserRepo:     userRepo,
		AdminCodes:   adminCodes,
		DonationRepo: donationRepo,
		RateLimiter:  limiter,
		Subscriber:   subscriber,
		Mailer:       mail,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startTokenPurge(ctx)
	go bt.startStaleDonationSweep(ctx)
	go bt.startLimiterSweep(ctx)
	if bt.Subscriber != nil && bt.Mailer != nil {
		go bt.startNotificationConsumer(ctx)
	}
}

func (bt *BackgroundTasks) startTokenPurge(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := bt.UserRepo.PurgeExpiredVerificationTokens(time.Now())
			if err != nil {
				log.Printf("Token purge error: %v\n", err)
				continue
			}
			if purged > 0 {
				log.Printf("Purged %d expired verification tokens", purged)
			}
			if bt.AdminCodes != nil {
				if _, err := bt.AdminCodes.DeleteExpired(time.Now()); err != nil {
					log.Printf("Admin code purge error: %v\n", err)
				}
			}
		}
	}
}

func (bt *BackgroundTasks) startStaleDonationSweep(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cancelled, err := bt.DonationRepo.CancelStalePending(time.Now().Add(-stalePendingAge))
			if err != nil {
				log.Printf("Stale donation sweep error: %v\n", err)
				continue
			}
			if cancelled > 0 {
				log.Printf("Cancelled %d stale pending donations", cancelled)
			}
		}
	}
}

func (bt *BackgroundTasks) startLimiterSweep(ctx context.Context) {
	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.RateLimiter.Sweep(2 * time.Hour)
		}
	}
}

// startNotificationConsumer drains the notification topic and hands each
// event to the mailer. Delivery is at-least-once; the mail API tolerates
// duplicate sends.
func (bt *BackgroundTasks) startNotificationConsumer(ctx context.Context) {
	messages, err := bt.Subscriber.Subscribe(publisher.NotificationTopic, "patriot-mail-dispatcher")
	if err != nil {
		log.Printf("Notification consumer failed to start: %v\n", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				log.Printf("Notification stream closed")
				return
			}
			var event publisher.NotificationEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("Malformed notification event: %v\n", err)
				continue
			}
			if err := bt.Mailer.Send(event.Recipient, event.Subject, event.Body); err != nil {
				log.Printf("Notification mail send error (kind=%s): %v\n", event.Kind, err)
			}
		}
	}
}
