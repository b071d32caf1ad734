package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	CatalogURL    string
	RefreshCron   string
	NotifyGranted bool
}

// ParseFlags validates flags and fills defaults from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("campusboard", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Local API port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Remote catalog
	fs.StringVar(&cfg.CatalogURL, "c", "", "Remote catalog base URL")
	fs.StringVar(&cfg.RefreshCron, "refresh", "", "Catalog refresh cron expression")

	// OS notification permission state
	notify := fs.Bool("notify", true, "Notification permission granted")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.NotifyGranted = *notify

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3319 // default
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "file:campusboard.db"
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	// Remote catalog - MUST be provided
	if cfg.CatalogURL == "" {
		cfg.CatalogURL = os.Getenv("CATALOG_URL")
	}
	if cfg.CatalogURL == "" {
		return Config{}, errors.New("catalog URL required (use -c or CATALOG_URL env)")
	}

	if cfg.RefreshCron == "" {
		cfg.RefreshCron = os.Getenv("REFRESH_CRON")
		if cfg.RefreshCron == "" {
			cfg.RefreshCron = "*/15 * * * *"
		}
	}

	if env := os.Getenv("NOTIFY_PERMISSION"); env != "" {
		granted, err := strconv.ParseBool(env)
		if err != nil {
			return Config{}, errors.New("invalid NOTIFY_PERMISSION env variable")
		}
		cfg.NotifyGranted = granted
	}

	return cfg, nil
}
