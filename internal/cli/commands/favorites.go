package commands

import (
	"context"
	"fmt"

	"BrainrotDex/internal/config"
	"BrainrotDex/internal/model"
)

type favCmd struct{}

func (favCmd) Name() string        { return "fav" }
func (favCmd) Description() string { return "Добавить/убрать запись из избранного" }
func (favCmd) Usage() string       { return "fav <ref>" }

func (favCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	ref, err := model.ParseRef(args[0])
	if err != nil {
		return ErrUsage
	}
	app, done, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	on, err := app.Catalog.ToggleFavorite(ctx, ref)
	if err != nil {
		return err
	}
	if on {
		fmt.Fprintf(Out, "Добавлено в избранное: %s\n", ref)
	} else {
		fmt.Fprintf(Out, "Убрано из избранного: %s\n", ref)
	}
	return nil
}

type favoritesCmd struct{}

func (favoritesCmd) Name() string        { return "favorites" }
func (favoritesCmd) Description() string { return "Показать избранное" }
func (favoritesCmd) Usage() string       { return "favorites" }

func (favoritesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	app, done, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	favs := app.Catalog.Favorites()
	if len(favs) == 0 {
		fmt.Fprintln(Out, "Избранное пусто")
		return nil
	}
	for _, f := range favs {
		fmt.Fprintf(Out, "- %-28s %s  cost=%g  income=%g\n", f.Ref(), f.Name, f.Cost, f.Income)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(favs))
	return nil
}

func init() {
	RegisterCmd(favCmd{})
	RegisterCmd(favoritesCmd{})
}
