package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/fergcraven/coachline/internal/models"
	"github.com/resend/resend-go/v2"
	"gorm.io/gorm"
)

// CheckinNotifier emails clients whose weekly check-in is due today.
// It runs on a ticker and dedupes per client per local day, so a client
// gets at most one nudge per cycle day.
type CheckinNotifier struct {
	db          *gorm.DB
	apiKey      string
	fromAddress string
	enabled     bool
	interval    time.Duration
	mu          sync.Mutex
	sentForDay  map[string]time.Time
}

func NewCheckinNotifier(db *gorm.DB) *CheckinNotifier {
	apiKey := os.Getenv("RESEND_API_KEY")
	fromAddress := os.Getenv("NOTIFY_FROM_EMAIL")
	if fromAddress == "" {
		fromAddress = "coach@coachline.app"
	}

	return &CheckinNotifier{
		db:          db,
		apiKey:      apiKey,
		fromAddress: fromAddress,
		enabled:     apiKey != "",
		interval:    6 * time.Hour,
		sentForDay:  make(map[string]time.Time),
	}
}

func (notifier *CheckinNotifier) Start(ctx context.Context) {
	if !notifier.enabled {
		return
	}

	ticker := time.NewTicker(notifier.interval)
	go func() {
		defer ticker.Stop()

		notifier.run(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				notifier.run(ctx)
			}
		}
	}()
}

func (notifier *CheckinNotifier) run(ctx context.Context) {
	clients := make([]models.User, 0)
	if err := notifier.db.WithContext(ctx).
		Where("role = ?", models.RoleClient).
		Find(&clients).Error; err != nil {
		log.Printf("notifier: fetch clients failed: %v", err)
		return
	}

	now := time.Now()
	for _, client := range clients {
		today := FormatInTimezone(now, client.Timezone)

		records := make([]models.CheckinRecord, 0)
		if err := notifier.db.WithContext(ctx).
			Where("client_id = ?", client.ID).
			Find(&records).Error; err != nil {
			log.Printf("notifier: fetch check-ins failed for client %d: %v", client.ID, err)
			continue
		}

		rows := make([]CheckinRow, 0, len(records))
		for _, record := range records {
			rows = append(rows, RowFromRecord(record))
		}

		if !DueForToday(today, rows, client.Timezone) {
			continue
		}

		key := fmt.Sprintf("checkin:%d:%s", client.ID, today)
		if notifier.alreadySent(key) {
			continue
		}
		if err := notifier.sendDueEmail(client, today); err != nil {
			// Not marked as sent, so the next tick retries.
			log.Printf("notifier: send due reminder failed for client %d: %v", client.ID, err)
			continue
		}
		notifier.markSent(key, now)
	}
}

func (notifier *CheckinNotifier) alreadySent(key string) bool {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()

	_, sent := notifier.sentForDay[key]
	return sent
}

// markSent records a delivered nudge and evicts entries old enough to
// belong to a previous cycle day in any timezone, keeping the map
// bounded without dropping same-day dedupe state.
func (notifier *CheckinNotifier) markSent(key string, now time.Time) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()

	notifier.sentForDay[key] = now
	for sentKey, sentAt := range notifier.sentForDay {
		if now.Sub(sentAt) > 48*time.Hour {
			delete(notifier.sentForDay, sentKey)
		}
	}
}

func (notifier *CheckinNotifier) sendDueEmail(client models.User, today CalendarDate) error {
	resendClient := resend.NewClient(notifier.apiKey)
	params := &resend.SendEmailRequest{
		From:    notifier.fromAddress,
		To:      []string{client.Email},
		Subject: "Your weekly check-in is due today",
		Html: fmt.Sprintf("<p>Hi %s,</p><p>Your check-in for the week ending %s is due today. It takes a couple of minutes and your trainer is waiting on it.</p>",
			client.Name, today),
	}
	if _, err := resendClient.Emails.Send(params); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
