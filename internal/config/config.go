package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	defaultBaseURL   = "localhost:8080"
	defaultRemoteURL = "http://localhost:4000"
	remoteOff        = "off"
	defaultPageSize  = 8
	appDirName       = "BrainrotDex"
	dbFileName       = "brainrots.db"
)

var allowedPageSizes = []int{4, 8, 12, 16}

type Config struct {
	// Хранилище: DSN postgres:// или путь к файлу SQLite
	DatabaseDSN string `env:"DATABASE_URI"`
	Memory      bool   `env:"-"` // хранить данные в памяти процесса (flag only)

	// HTTP-сервер
	BaseURL string `env:"BASE_URL"`

	// Внешний API каталога
	RemoteURL     string        `env:"REMOTE_API_URL"`
	RemoteTimeout time.Duration `env:"REMOTE_TIMEOUT"`

	// CLI
	PageSize int  `env:"PAGE_SIZE"`
	Verbose  bool `env:"-"`
	Version  bool `env:"-"` // show version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres://... или путь к файлу SQLite)")
	flag.BoolVar(&cfg.Memory, "memory", cfg.Memory, "хранить данные в памяти (без БД)")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "адрес HTTP-сервера host:port")
	flag.StringVar(&cfg.RemoteURL, "remote", cfg.RemoteURL, "base URL внешнего API каталога (off: без внешнего API)")
	flag.DurationVar(&cfg.RemoteTimeout, "remote-timeout", cfg.RemoteTimeout, "таймаут запросов к внешнему API (0 = без таймаута)")
	flag.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "размер страницы списка (4, 8, 12, 16)")
	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "подробный лог")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]*:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = defaultBaseURL
	}

	cfg.RemoteURL = strings.TrimRight(strings.TrimSpace(cfg.RemoteURL), "/")
	switch strings.ToLower(cfg.RemoteURL) {
	case "":
		cfg.RemoteURL = defaultRemoteURL
	case remoteOff, "none":
		// внешний API отключён: только локальные записи
		cfg.RemoteURL = ""
	}
	if cfg.RemoteTimeout < 0 {
		cfg.RemoteTimeout = 0
	}

	if !validPageSize(cfg.PageSize) {
		cfg.PageSize = defaultPageSize
	}

	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = DefaultDatabasePath()
	}
}

// RemoteEnabled сообщает, настроен ли внешний API.
func (cfg *Config) RemoteEnabled() bool { return cfg.RemoteURL != "" }

// DefaultDatabasePath: файл SQLite в пользовательском каталоге конфигурации.
func DefaultDatabasePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		home, _ := os.UserHomeDir()
		dir = home
	}
	return filepath.Join(dir, appDirName, dbFileName)
}

func validPageSize(n int) bool {
	for _, s := range allowedPageSizes {
		if s == n {
			return true
		}
	}
	return false
}
