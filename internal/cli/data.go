package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/terraincognita07/lunamia/internal/models"
	"github.com/terraincognita07/lunamia/internal/services"
)

type StatsBuilder interface {
	BuildInsights(today time.Time) (services.CycleStats, []services.Insight, error)
}

type BackupRunner interface {
	Export(now time.Time) (services.BackupDocument, error)
	Import(document services.BackupDocument, now time.Time) (services.ImportSummary, error)
	Reset() error
}

type ReminderRunner interface {
	RunOnce(ctx context.Context) ([]models.Notification, error)
}

// PrintStats writes a human-readable prediction summary followed by the localized insights.
func PrintStats(stats StatsBuilder, catalog services.MessageCatalog, language string, today time.Time, out io.Writer) error {
	snapshot, insights, err := stats.BuildInsights(today)
	if err != nil {
		return err
	}
	snapshot = services.LocalizeCycleStats(snapshot, catalog, language)

	fmt.Fprintf(out, "Today:          %s\n", today.Format(models.DateLayout))
	if snapshot.CurrentDay != nil {
		fmt.Fprintf(out, "Cycle day:      %d\n", *snapshot.CurrentDay)
	} else {
		fmt.Fprintln(out, "Cycle day:      -")
	}
	fmt.Fprintf(out, "Phase:          %s\n", snapshot.PhaseLabel)
	if snapshot.NextPeriodDate != nil {
		fmt.Fprintf(out, "Next period:    %s\n", *snapshot.NextPeriodDate)
	}
	fmt.Fprintf(out, "Average cycle:  %d days\n", snapshot.AverageCycleLength)
	fmt.Fprintf(out, "Ovulation day:  %d\n", snapshot.OvulationDay)

	for _, card := range services.RenderInsights(insights, catalog, language) {
		fmt.Fprintf(out, "\n* %s\n  %s\n", card.Title, card.Message)
	}
	return nil
}

// ExportBackup writes the backup document to path, or to a dated file in dir when path
// is a directory.
func ExportBackup(backups BackupRunner, path string, now time.Time, out io.Writer) (string, error) {
	document, err := backups.Export(now)
	if err != nil {
		return "", err
	}
	if info, statErr := os.Stat(path); path == "" || (statErr == nil && info.IsDir()) {
		path = filepath.Join(path, services.BackupFileName(now))
	}

	content, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode backup: %w", err)
	}
	if err := os.WriteFile(path, append(content, '\n'), 0o600); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	fmt.Fprintf(out, "Exported %d logs to %s\n", len(document.DailyLogs), path)
	return path, nil
}

func ImportBackup(backups BackupRunner, path string, now time.Time, out io.Writer) (services.ImportSummary, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return services.ImportSummary{}, fmt.Errorf("read backup: %w", err)
	}
	document, err := services.ParseBackup(content)
	if err != nil {
		return services.ImportSummary{}, err
	}

	summary, err := backups.Import(document, now)
	if err != nil {
		return services.ImportSummary{}, err
	}
	fmt.Fprintf(out, "Imported %d logs, %d settings, %d custom symptoms\n", summary.DailyLogs, summary.Settings, summary.CustomSymptoms)
	return summary, nil
}

func ResetData(backups BackupRunner, confirmed bool, out io.Writer) error {
	if !confirmed {
		return errors.New("refusing to delete data without --yes")
	}
	if err := backups.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(out, "All logs, settings and custom symptoms deleted")
	return nil
}

func SendReminders(ctx context.Context, reminders ReminderRunner, out io.Writer) error {
	created, err := reminders.RunOnce(ctx)
	if err != nil {
		return err
	}
	if len(created) == 0 {
		fmt.Fprintln(out, "No new reminders")
		return nil
	}
	for _, notification := range created {
		fmt.Fprintf(out, "[%s] %s\n", notification.Kind, notification.Message)
	}
	return nil
}
