package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/terraincognita07/lunamia/internal/models"
)

type recordingNotifier struct {
	received []models.Notification
	err      error
}

func (notifier *recordingNotifier) Notify(_ context.Context, notification models.Notification) error {
	notifier.received = append(notifier.received, notification)
	return notifier.err
}

func newReminderServiceForTest(t *testing.T, today string, notifiers ...Notifier) (*ReminderService, *notificationRepositoryStub) {
	t.Helper()

	stats, _, _ := newStatsServiceForTest(t, nil, flowRange(t, "2024-01-01", "2024-01-05", models.FlowMedium)...)
	notifications := newNotificationRepositoryStub()
	service := NewReminderService(stats, notifications, messageCatalogStub{}, "en", time.UTC, notifiers...)
	now := mustParseCalendarDay(t, today).Add(8 * time.Hour)
	service.now = func() time.Time { return now }
	return service, notifications
}

func TestReminderServiceRunOnceRecordsActionableInsights(t *testing.T) {
	t.Parallel()

	notifier := &recordingNotifier{}
	service, notifications := newReminderServiceForTest(t, "2024-01-12", notifier)

	created, err := service.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce() error: %v", err)
	}
	// follicular-info stays on the dashboard; only ovulation-soon is pushed.
	if len(created) != 1 || created[0].Kind != InsightOvulationSoon || created[0].ForDate != "2024-01-12" {
		t.Fatalf("unexpected reminders: %+v", created)
	}
	if created[0].UID == "" || !strings.Contains(created[0].Message, "days=2") {
		t.Fatalf("unexpected reminder content: %+v", created[0])
	}
	if len(notifier.received) != 1 || created[0].DeliveredAt == nil {
		t.Fatalf("expected delivery, got %d notifications", len(notifier.received))
	}
	if _, ok := notifications.delivered[created[0].ID]; !ok {
		t.Fatal("expected reminder to be marked delivered")
	}

	again, err := service.RunOnce(context.Background())
	if err != nil || len(again) != 0 {
		t.Fatalf("expected second run to be a no-op, got %+v, %v", again, err)
	}
	if len(notifier.received) != 1 {
		t.Fatalf("expected no duplicate delivery, got %d", len(notifier.received))
	}
}

func TestReminderServiceFailedDeliveryIsNotMarked(t *testing.T) {
	t.Parallel()

	notifier := &recordingNotifier{err: errors.New("offline")}
	service, notifications := newReminderServiceForTest(t, "2024-01-27", notifier)

	created, err := service.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce() error: %v", err)
	}
	if len(created) != 1 || created[0].Kind != InsightPeriodSoon || created[0].DeliveredAt != nil {
		t.Fatalf("unexpected reminders: %+v", created)
	}
	if len(notifications.delivered) != 0 {
		t.Fatal("expected failed delivery to stay unmarked")
	}

	listed, err := service.ListRecent()
	if err != nil || len(listed) != 1 {
		t.Fatalf("ListRecent() = %d, %v", len(listed), err)
	}
}

func TestReminderServiceRetriesFailedDeliveryOnNextRun(t *testing.T) {
	t.Parallel()

	notifier := &recordingNotifier{err: errors.New("offline")}
	service, notifications := newReminderServiceForTest(t, "2024-01-27", notifier)

	first, err := service.RunOnce(context.Background())
	if err != nil || len(first) != 1 || first[0].DeliveredAt != nil {
		t.Fatalf("first run = %+v, %v", first, err)
	}

	notifier.err = nil
	second, err := service.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce() error: %v", err)
	}
	if len(second) != 1 || second[0].ID != first[0].ID || second[0].DeliveredAt == nil {
		t.Fatalf("expected the stored reminder to be redelivered, got %+v", second)
	}
	if _, ok := notifications.delivered[first[0].ID]; !ok {
		t.Fatal("expected retried reminder to be marked delivered")
	}
	if len(notifications.notifications) != 1 {
		t.Fatalf("expected no duplicate row, got %d", len(notifications.notifications))
	}

	third, err := service.RunOnce(context.Background())
	if err != nil || len(third) != 0 {
		t.Fatalf("expected third run to be a no-op, got %+v, %v", third, err)
	}
	if len(notifier.received) != 2 {
		t.Fatalf("expected two delivery attempts, got %d", len(notifier.received))
	}
}

func TestReminderServiceStartRejectsBadSchedule(t *testing.T) {
	t.Parallel()

	service, _ := newReminderServiceForTest(t, "2024-01-12")
	if err := service.Start(context.Background(), "every day"); !errors.Is(err, ErrInvalidReminderSchedule) {
		t.Fatalf("expected ErrInvalidReminderSchedule, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := service.Start(ctx, DefaultReminderSchedule); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	cancel()
	service.Stop()

	if err := ValidateReminderSchedule("*/5 * * * *"); err != nil {
		t.Fatalf("ValidateReminderSchedule() error: %v", err)
	}
	if err := ValidateReminderSchedule("61 * * * *"); !errors.Is(err, ErrInvalidReminderSchedule) {
		t.Fatalf("expected ErrInvalidReminderSchedule, got %v", err)
	}
}

type telegramSenderStub struct {
	sent []tgbotapi.Chattable
	err  error
}

func (stub *telegramSenderStub) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	stub.sent = append(stub.sent, c)
	return tgbotapi.Message{}, stub.err
}

func TestTelegramNotifier(t *testing.T) {
	t.Parallel()

	if _, err := NewTelegramNotifier("", 42); !errors.Is(err, ErrTelegramNotConfigured) {
		t.Fatalf("expected ErrTelegramNotConfigured, got %v", err)
	}

	sender := &telegramSenderStub{}
	notifier := NewTelegramNotifierWithSender(sender, 42)
	if err := notifier.Notify(context.Background(), models.Notification{Message: "Period soon"}); err != nil {
		t.Fatalf("Notify() error: %v", err)
	}
	message, ok := sender.sent[0].(tgbotapi.MessageConfig)
	if !ok || message.ChatID != 42 || message.Text != "Period soon" {
		t.Fatalf("unexpected telegram message: %#v", sender.sent[0])
	}

	sender.err = errors.New("blocked")
	if err := notifier.Notify(context.Background(), models.Notification{Message: "x"}); err == nil {
		t.Fatal("expected send error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := notifier.Notify(ctx, models.Notification{Message: "x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
