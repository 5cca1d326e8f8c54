package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"BrainrotDex/internal/config"
	"BrainrotDex/internal/service"
)

type exportCmd struct{}

func (exportCmd) Name() string        { return "export" }
func (exportCmd) Description() string { return "Сохранить резервную копию (\"-\" = stdout)" }
func (exportCmd) Usage() string       { return "export [path|-]" }

func (exportCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	app, done, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	path := app.Transfer.FileName()
	if len(args) == 1 {
		path = args[0]
	}
	if path == "-" {
		return app.Transfer.Export(Out)
	}
	if err := writeSnapshotFile(path, app.Transfer); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Экспортировано в %s\n", path)
	return nil
}

// writeSnapshotFile пишет во временный файл рядом и переименовывает:
// прерванный экспорт не оставляет обрезанный файл.
func writeSnapshotFile(path string, tr *service.Transfer) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".brainrots-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := tr.Export(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

type importCmd struct{}

func (importCmd) Name() string        { return "import" }
func (importCmd) Description() string { return "Заменить локальные данные резервной копией" }
func (importCmd) Usage() string       { return "import <path>" }

func (importCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	app, done, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	res, err := app.Transfer.Import(f)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Импортировано: записей %d, избранных %d\n", res.Items, res.Favorites)
	return nil
}

func init() {
	RegisterCmd(exportCmd{})
	RegisterCmd(importCmd{})
}
