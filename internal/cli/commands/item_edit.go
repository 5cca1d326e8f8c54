package commands

import (
	"context"
	"fmt"

	"BrainrotDex/internal/config"
	"BrainrotDex/internal/model"
)

const itemFlagsUsage = "[--cost N] [--income N] [--rarity R] [--img URL] [--description D] [--region R] [--location L] [--favorite] [--concluida]"

type addCmd struct{}

func (addCmd) Name() string        { return "add" }
func (addCmd) Description() string { return "Создать локальную запись" }
func (addCmd) Usage() string       { return "add <name> " + itemFlagsUsage }

func (addCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	f := newItemFlags("add")
	pos, err := parseInterleaved(f.fs, args)
	if err != nil || len(pos) != 1 {
		return ErrUsage
	}

	app, done, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	created, err := app.Catalog.Create(f.item(pos[0]))
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "Created:")
	fmt.Fprintf(Out, "  ref:  %s\n", model.LocalRef(created.ID))
	fmt.Fprintf(Out, "  name: %s\n", created.Name)
	return nil
}

type editCmd struct{}

func (editCmd) Name() string        { return "edit" }
func (editCmd) Description() string { return "Изменить поля локальной записи" }
func (editCmd) Usage() string       { return "edit <ref> [--name N] " + itemFlagsUsage }

func (editCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	f := newItemFlags("edit")
	pos, err := parseInterleaved(f.fs, args)
	if err != nil || len(pos) != 1 {
		return ErrUsage
	}
	ref, err := model.ParseRef(pos[0])
	if err != nil {
		return ErrUsage
	}
	patch := f.patch()
	if patch.Empty() {
		return ErrUsage
	}

	app, done, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	updated, err := app.Catalog.Update(ref, patch)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "Updated:")
	fmt.Fprintf(Out, "  ref:  %s\n", model.LocalRef(updated.ID))
	fmt.Fprintf(Out, "  name: %s\n", updated.Name)
	return nil
}

type deleteCmd struct{}

func (deleteCmd) Name() string        { return "delete" }
func (deleteCmd) Aliases() []string   { return []string{"rm"} }
func (deleteCmd) Description() string { return "Удалить локальную запись (и из избранного)" }
func (deleteCmd) Usage() string       { return "delete <ref>" }

func (deleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
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

	removed, err := app.Catalog.Delete(ref)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintf(Out, "Запись %s не найдена\n", ref)
		return nil
	}
	fmt.Fprintf(Out, "Удалено: %s\n", ref)
	return nil
}

func init() {
	RegisterCmd(addCmd{})
	RegisterCmd(editCmd{})
	RegisterCmd(deleteCmd{})
}
