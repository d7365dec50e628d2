package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	rcron "github.com/robfig/cron/v3"
	"github.com/terraincognita07/lunamia/internal/models"
)

const (
	DefaultReminderSchedule = "0 8 * * *"
	recentReminderLimit     = 50
)

var (
	ErrReminderRunFailed       = errors.New("reminder run failed")
	ErrInvalidReminderSchedule = errors.New("invalid reminder schedule")
)

// reminderKinds lists the insights worth pushing; informational ones stay on the dashboard.
var reminderKinds = map[string]struct{}{
	InsightPeriodNow:     {},
	InsightPeriodSoon:    {},
	InsightPeriodLate:    {},
	InsightOvulationNow:  {},
	InsightOvulationSoon: {},
}

type NotificationRepository interface {
	ListRecent(limit int) ([]models.Notification, error)
	CreateIfAbsent(notification *models.Notification) (bool, error)
	MarkDelivered(id uint, deliveredAt time.Time) error
	ListUndelivered(forDate string) ([]models.Notification, error)
}

type ReminderInsightSource interface {
	BuildInsights(today time.Time) (CycleStats, []Insight, error)
}

type Notifier interface {
	Notify(ctx context.Context, notification models.Notification) error
}

type ReminderService struct {
	insights      ReminderInsightSource
	notifications NotificationRepository
	catalog       MessageCatalog
	language      string
	location      *time.Location
	notifiers     []Notifier
	now           func() time.Time

	runMu  sync.Mutex
	cronMu sync.Mutex
	cron   *rcron.Cron
}

func NewReminderService(insights ReminderInsightSource, notifications NotificationRepository, catalog MessageCatalog, language string, location *time.Location, notifiers ...Notifier) *ReminderService {
	if location == nil {
		location = time.UTC
	}
	return &ReminderService{
		insights:      insights,
		notifications: notifications,
		catalog:       catalog,
		language:      language,
		location:      location,
		notifiers:     notifiers,
		now:           time.Now,
	}
}

func (service *ReminderService) ListRecent() ([]models.Notification, error) {
	return service.notifications.ListRecent(recentReminderLimit)
}

// RunOnce records today's reminders and delivers the ones not already recorded. A kind
// is stored at most once per calendar day, so repeated runs are harmless. A reminder
// recorded earlier today whose delivery failed is retried; it is returned only once
// it finally goes out.
func (service *ReminderService) RunOnce(ctx context.Context) ([]models.Notification, error) {
	service.runMu.Lock()
	defer service.runMu.Unlock()

	now := service.now().In(service.location)
	_, insights, err := service.insights.BuildInsights(now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReminderRunFailed, err)
	}

	today := now.Format(models.DateLayout)
	pending, err := service.notifications.ListUndelivered(today)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReminderRunFailed, err)
	}
	undelivered := make(map[string]models.Notification, len(pending))
	for _, notification := range pending {
		undelivered[notification.Kind] = notification
	}

	created := make([]models.Notification, 0)
	for _, card := range RenderInsights(insights, service.catalog, service.language) {
		if _, ok := reminderKinds[card.Key]; !ok {
			continue
		}

		notification := models.Notification{
			UID:     uuid.NewString(),
			Kind:    card.Key,
			ForDate: today,
			Message: card.Title + ". " + card.Message,
		}
		inserted, err := service.notifications.CreateIfAbsent(&notification)
		if err != nil {
			return created, fmt.Errorf("%w: %v", ErrReminderRunFailed, err)
		}
		if !inserted {
			retry, ok := undelivered[card.Key]
			if !ok {
				continue
			}
			if service.deliverAndMark(ctx, &retry) {
				created = append(created, retry)
			}
			continue
		}

		service.deliverAndMark(ctx, &notification)
		created = append(created, notification)
	}
	return created, nil
}

func (service *ReminderService) deliverAndMark(ctx context.Context, notification *models.Notification) bool {
	if !service.deliver(ctx, *notification) {
		return false
	}
	deliveredAt := service.now().UTC()
	if err := service.notifications.MarkDelivered(notification.ID, deliveredAt); err != nil {
		log.Printf("[reminders] mark %s delivered: %v", notification.UID, err)
		return true
	}
	notification.DeliveredAt = &deliveredAt
	return true
}

func (service *ReminderService) deliver(ctx context.Context, notification models.Notification) bool {
	if len(service.notifiers) == 0 {
		return false
	}
	delivered := true
	for _, notifier := range service.notifiers {
		if err := notifier.Notify(ctx, notification); err != nil {
			log.Printf("[reminders] deliver %s (%s): %v", notification.Kind, notification.UID, err)
			delivered = false
		}
	}
	return delivered
}

// Start schedules RunOnce on spec (standard five-field cron syntax, evaluated in the
// service location) until ctx is cancelled.
func (service *ReminderService) Start(ctx context.Context, spec string) error {
	scheduler := rcron.New(rcron.WithLocation(service.location))
	if _, err := scheduler.AddFunc(spec, func() {
		created, err := service.RunOnce(ctx)
		if err != nil {
			log.Printf("[reminders] run failed: %v", err)
			return
		}
		log.Printf("[reminders] run complete, %d new reminder(s)", len(created))
	}); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidReminderSchedule, spec, err)
	}

	service.cronMu.Lock()
	service.cron = scheduler
	service.cronMu.Unlock()

	scheduler.Start()
	log.Printf("[reminders] scheduled with %q", spec)

	go func() {
		<-ctx.Done()
		service.Stop()
	}()
	return nil
}

func (service *ReminderService) Stop() {
	service.cronMu.Lock()
	scheduler := service.cron
	service.cron = nil
	service.cronMu.Unlock()
	if scheduler == nil {
		return
	}

	stopCtx := scheduler.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
		log.Printf("[reminders] stop timeout waiting for running job")
	}
}

// ValidateReminderSchedule parses spec with the same parser Start uses.
func ValidateReminderSchedule(spec string) error {
	if _, err := rcron.ParseStandard(spec); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidReminderSchedule, spec, err)
	}
	return nil
}

type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, notification models.Notification) error {
	log.Printf("[reminders] %s %s: %s", notification.ForDate, notification.Kind, notification.Message)
	return nil
}
