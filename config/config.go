package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/energiekompas/energiekompas-go/hours"
	"github.com/energiekompas/energiekompas-go/logging"
)

type AppConfigApi struct {
	Address string
	Port    int16
}

type AppConfigDatabase struct {
	Path string
	// Where backup archives are written, default: "backups" next to the database file
	BackupDir *string `mapstructure:"backup_dir"`
	// How many days daily backup files should be stored before they get deleted
	BackupRetentionDays *int `mapstructure:"backup_retention_days"`
}

func (d AppConfigDatabase) GetBackupDir() string {
	if d.BackupDir == nil {
		return ""
	}
	return *d.BackupDir
}

func (d AppConfigDatabase) GetBackupRetentionDays() int {
	if d.BackupRetentionDays == nil {
		return 90
	}
	return *d.BackupRetentionDays
}

type AppConfigMarketPrice struct {
	// Cron expression for refreshing the day/night/gas market averages
	RunAt string `mapstructure:"run_at"`
	// How many days of day-ahead prices the averages are computed over
	AverageDays *int `mapstructure:"average_days"`
}

func (m AppConfigMarketPrice) GetAverageDays() int {
	if m.AverageDays == nil {
		return 30
	}
	return *m.AverageDays
}

type AppConfigCalculation struct {
	// Tariff year used when a request does not specify one; 0 means the current year
	DefaultYear *int `mapstructure:"default_year"`
	// Day (peak) window for blending day/night market prices on single-register
	// meters, default 06:00-23:00
	DayStartHour *int `mapstructure:"day_start_hour"`
	DayEndHour   *int `mapstructure:"day_end_hour"`
}

func (c AppConfigCalculation) GetDefaultYear() int {
	if c.DefaultYear == nil {
		return 0
	}
	return *c.DefaultYear
}

func (c AppConfigCalculation) GetDayWindow() (hours.DayWindow, error) {
	start := hours.DefaultDayStart
	end := hours.DefaultDayEnd
	if c.DayStartHour != nil {
		start = *c.DayStartHour
	}
	if c.DayEndHour != nil {
		end = *c.DayEndHour
	}
	return hours.NewDayWindow(start, end)
}

type AppConfigLogging struct {
	// Min log level for database: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for the console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat == nil {
		return logging.LogAttrFormatJSON
	}
	if strings.EqualFold(*l.DbAttrsFormat, "text") {
		return logging.LogAttrFormatText
	}
	return logging.LogAttrFormatJSON
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	Api         AppConfigApi
	Database    AppConfigDatabase
	MarketPrice AppConfigMarketPrice `mapstructure:"market_price"`
	Calculation AppConfigCalculation
	Logging     AppConfigLogging
}

func Load(path string) (*AppConfig, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath("config")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c AppConfig

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}

// Watch re-reads the config file on change and hands the fresh config to
// onChange. Errors during reload keep the previous config in effect.
func Watch(logger *slog.Logger, onChange func(*AppConfig)) {
	viper.OnConfigChange(func(e fsnotify.Event) {
		logger.Info("config file changed, reloading", slog.String("file", e.Name))
		var c AppConfig
		if err := viper.Unmarshal(&c); err != nil {
			logger.Error("config reload failed", slog.Any("error", err))
			return
		}
		onChange(&c)
	})
	viper.WatchConfig()
}
