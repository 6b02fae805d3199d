package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/agribank/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	moneyColor = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	idColor    = lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#7E57C2"}
	stateColor = lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	errorColor = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}
)

// Log keys written by the services and the audit handler, grouped by how
// they are rendered in text mode.
var (
	moneyKeys = []string{"amount", "commission", "installment", "remaining", "held"}
	idKeys    = []string{
		"actorID", "accountID", "destAccountID", "ownerID", "userID", "personID",
		"loanID", "applicationID", "actionID", "managerID", "employeeID", "transactionID",
		"transaction_id", "loan_id", "application_id", "customer_id",
	}
	stateKeys = []string{"status", "role", "event_type", "resolved_by", "paidOff"}
)

var levelBadges = map[log.Level]struct {
	badge string
	color lipgloss.AdaptiveColor
}{
	log.ErrorLevel: {"❌", errorColor},
	log.WarnLevel:  {"⚠️", stateColor},
	log.InfoLevel:  {"ℹ️", moneyColor},
	log.DebugLevel: {"🐛", idColor},
}

func setupLogger(cfg *config.Log) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer, cfg *config.Log) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text"}
	}

	formatter := log.TextFormatter
	if cfg.Format == "json" {
		formatter = log.JSONFormatter
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(ledgerStyles())

	return slog.New(logger)
}

func ledgerStyles() *log.Styles {
	styles := log.DefaultStyles()
	for level, b := range levelBadges {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(b.badge).
			Bold(true).
			Padding(0, 1).
			Foreground(b.color)
	}

	bold := lipgloss.NewStyle().Bold(true)
	keyed := func(keys []string, color lipgloss.AdaptiveColor, value lipgloss.Style) {
		for _, k := range keys {
			styles.Keys[k] = lipgloss.NewStyle().Foreground(color)
			styles.Values[k] = value
		}
	}
	keyed(moneyKeys, moneyColor, bold)
	keyed(idKeys, idColor, lipgloss.NewStyle())
	keyed(stateKeys, stateColor, bold)
	keyed([]string{"error"}, errorColor, bold.Foreground(errorColor))
	return styles
}
