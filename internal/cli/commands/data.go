package commands

import (
	"context"
	"fmt"

	"BrainrotDex/internal/config"
)

type samplesCmd struct{}

func (samplesCmd) Name() string        { return "samples" }
func (samplesCmd) Description() string { return "Добавить демонстрационные записи в пустой каталог" }
func (samplesCmd) Usage() string       { return "samples" }

func (samplesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	app, done, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	n, err := app.Catalog.SeedSamples()
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(Out, "Каталог не пуст, примеры не добавлены")
		return nil
	}
	fmt.Fprintf(Out, "Добавлено примеров: %d\n", n)
	return nil
}

type clearCmd struct{}

func (clearCmd) Name() string        { return "clear" }
func (clearCmd) Description() string { return "Удалить все локальные записи и избранное" }
func (clearCmd) Usage() string       { return "clear" }

func (clearCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	app, done, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	if err := app.Catalog.ClearAll(); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Локальные данные удалены")
	return nil
}

func init() {
	RegisterCmd(samplesCmd{})
	RegisterCmd(clearCmd{})
}
