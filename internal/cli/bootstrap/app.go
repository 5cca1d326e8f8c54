package bootstrap

import (
	"fmt"

	"BrainrotDex/internal/api"
	"BrainrotDex/internal/config"
	"BrainrotDex/internal/repo"
	"BrainrotDex/internal/service"
	"BrainrotDex/internal/storage"
	"BrainrotDex/internal/store"

	"go.uber.org/zap"
)

// App: собранные сервисы каталога.
type App struct {
	Catalog  *service.Catalog
	Transfer *service.Transfer
	Logger   *zap.SugaredLogger
}

// NewLogger: development-логгер при verbose, иначе no-op.
func NewLogger(verbose bool) (*zap.SugaredLogger, error) {
	if !verbose {
		return zap.NewNop().Sugar(), nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

// OpenBackend открывает хранилище по конфигу: память процесса или БД по DSN.
// cleanup закрывает соединение с БД.
func OpenBackend(cfg *config.Config) (repo.Backend, func() error, error) {
	if cfg.Memory {
		return repo.NewMemoryBackend(), func() error { return nil }, nil
	}
	db, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	cleanup := func() error { return repo.CloseDB(db) }
	return repo.NewKVRepository(db), cleanup, nil
}

// Open собирает App поверх хранилища из конфига.
// cleanup необходимо вызвать после окончания работы, чтобы закрыть соединение с БД.
func Open(cfg *config.Config, logger *zap.SugaredLogger) (*App, func() error, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	backend, cleanup, err := OpenBackend(cfg)
	if err != nil {
		return nil, nil, err
	}
	return Build(cfg, backend, logger), cleanup, nil
}

// Build связывает адаптер, хранилища, клиент внешнего API и сервисы.
func Build(cfg *config.Config, backend repo.Backend, logger *zap.SugaredLogger) *App {
	kv := storage.NewAdapter(backend, logger)
	items := store.NewItemStore(kv, nil)
	favs := store.NewFavoritesStore(kv)

	var remote service.RemoteSource
	if cfg.RemoteEnabled() {
		remote = api.NewClient(cfg.RemoteURL, cfg.RemoteTimeout)
	}
	cat := service.NewCatalog(items, favs, remote, logger)
	return &App{
		Catalog:  cat,
		Transfer: service.NewTransfer(cat, nil),
		Logger:   logger,
	}
}
