package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/lunamia/internal/cli"
	"github.com/terraincognita07/lunamia/internal/db"
	"github.com/terraincognita07/lunamia/internal/i18n"
	"github.com/terraincognita07/lunamia/internal/models"
	"github.com/terraincognita07/lunamia/internal/services"
	"gorm.io/gorm"
)

var (
	dbPathFlag      string
	todayFlag       string
	languageFlag    string
	outFlag         string
	confirmFlag     bool
	interactiveFlag bool
)

var rootCmd = &cobra.Command{
	Use:           "lunamia",
	Short:         "lunamia - private menstrual cycle tracker",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the reminder scheduler",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the current cycle prediction",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSON backup of all data",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all data with a JSON backup",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var resetDataCmd = &cobra.Command{
	Use:   "reset-data",
	Short: "Delete all logs, settings and custom symptoms",
	Args:  cobra.NoArgs,
	RunE:  runResetData,
}

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Compute and deliver today's reminders once",
	Args:  cobra.NoArgs,
	RunE:  runNotify,
}

var resetPassphraseCmd = &cobra.Command{
	Use:   "reset-passphrase",
	Short: "Replace the owner passphrase",
	Args:  cobra.NoArgs,
	RunE:  runResetPassphrase,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "SQLite database path (default $DB_PATH or data/lunamia.db)")
	statsCmd.Flags().StringVar(&todayFlag, "today", "", "Evaluate as of this date (YYYY-MM-DD)")
	statsCmd.Flags().StringVar(&languageFlag, "lang", "", "Output language (default $DEFAULT_LANGUAGE)")
	exportCmd.Flags().StringVarP(&outFlag, "out", "o", ".", "Output file or directory")
	resetDataCmd.Flags().BoolVar(&confirmFlag, "yes", false, "Confirm deletion")
	resetPassphraseCmd.Flags().BoolVarP(&interactiveFlag, "interactive", "i", false, "Prompt for the new passphrase instead of generating one")

	rootCmd.AddCommand(serveCmd, statsCmd, exportCmd, importCmd, resetDataCmd, notifyCmd, resetPassphraseCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "lunamia: %v\n", err)
		os.Exit(1)
	}
}

// stack bundles the services the offline commands share.
type stack struct {
	database  *gorm.DB
	location  *time.Location
	i18n      *i18n.Manager
	stats     *services.StatsService
	backups   *services.BackupService
	reminders *services.ReminderService
	auth      *services.OwnerAuthService
}

func openStack(secretKey string, notifiers ...services.Notifier) (*stack, error) {
	location := resolveLocation()
	manager, err := i18n.NewManager(getEnv("DEFAULT_LANGUAGE", i18n.LangEN))
	if err != nil {
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}

	database, err := db.OpenSQLite(resolveDBPath(dbPathFlag))
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	repos := db.NewRepositories(database)
	days := services.NewDayService(repos.DailyLogs)
	settings := services.NewSettingsService(repos.Settings)
	stats := services.NewStatsService(days, settings)
	return &stack{
		database:  database,
		location:  location,
		i18n:      manager,
		stats:     stats,
		backups:   services.NewBackupService(repos.DailyLogs, repos.Settings, repos.Symptoms, repos.Backups),
		reminders: services.NewReminderService(stats, repos.Notifications, manager, manager.DefaultLanguage(), location, notifiers...),
		auth:      services.NewOwnerAuthService(repos.Credentials, []byte(secretKey)),
	}, nil
}

func (rt *stack) Close() {
	_ = db.Close(rt.database)
}

func (rt *stack) today() time.Time {
	return services.CalendarDate(time.Now().In(rt.location))
}

func runStats(cmd *cobra.Command, _ []string) error {
	rt, err := openStack("")
	if err != nil {
		return err
	}
	defer rt.Close()

	today := rt.today()
	if todayFlag != "" {
		parsed, err := time.Parse(models.DateLayout, todayFlag)
		if err != nil {
			return fmt.Errorf("invalid --today %q", todayFlag)
		}
		today = parsed
	}

	language := rt.i18n.DefaultLanguage()
	if languageFlag != "" {
		language = rt.i18n.NormalizeLanguage(languageFlag)
	}
	return cli.PrintStats(rt.stats, rt.i18n, language, today, cmd.OutOrStdout())
}

func runExport(cmd *cobra.Command, _ []string) error {
	rt, err := openStack("")
	if err != nil {
		return err
	}
	defer rt.Close()

	_, err = cli.ExportBackup(rt.backups, outFlag, time.Now().In(rt.location), cmd.OutOrStdout())
	return err
}

func runImport(cmd *cobra.Command, args []string) error {
	rt, err := openStack("")
	if err != nil {
		return err
	}
	defer rt.Close()

	_, err = cli.ImportBackup(rt.backups, args[0], time.Now(), cmd.OutOrStdout())
	return err
}

func runResetData(cmd *cobra.Command, _ []string) error {
	if !confirmFlag {
		return errors.New("refusing to delete data without --yes")
	}
	rt, err := openStack("")
	if err != nil {
		return err
	}
	defer rt.Close()

	return cli.ResetData(rt.backups, confirmFlag, cmd.OutOrStdout())
}

func runNotify(cmd *cobra.Command, _ []string) error {
	notifiers, err := configuredNotifiers()
	if err != nil {
		return err
	}
	rt, err := openStack("", notifiers...)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, stop := withSignals(cmd.Context())
	defer stop()
	return cli.SendReminders(ctx, rt.reminders, cmd.OutOrStdout())
}

func runResetPassphrase(cmd *cobra.Command, _ []string) error {
	rt, err := openStack("")
	if err != nil {
		return err
	}
	defer rt.Close()

	if interactiveFlag {
		return cli.ChoosePassphrase(rt.auth, cli.TerminalPrompt(os.Stdin, cmd.OutOrStdout()), cmd.OutOrStdout())
	}
	return cli.ResetPassphrase(rt.auth, cmd.OutOrStdout())
}

func configuredNotifiers() ([]services.Notifier, error) {
	notifiers := []services.Notifier{services.LogNotifier{}}

	token, chatID, ok, err := resolveTelegram()
	if err != nil {
		return nil, err
	}
	if ok {
		telegram, err := services.NewTelegramNotifier(token, chatID)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, telegram)
	}
	return notifiers, nil
}

func withSignals(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
