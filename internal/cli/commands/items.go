package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"BrainrotDex/internal/config"
	"BrainrotDex/internal/model"
	"BrainrotDex/internal/service"
)

type itemsCmd struct{}

func (itemsCmd) Name() string      { return "items" }
func (itemsCmd) Aliases() []string { return []string{"ls"} }
func (itemsCmd) Description() string {
	return "Показать все записи (внешний API + локальные)"
}
func (itemsCmd) Usage() string { return "items" }

func (itemsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	app, done, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	listing, err := app.Catalog.List(ctx)
	if err != nil {
		return err
	}
	printWarnings(listing.Warnings)
	if len(listing.Entries) == 0 {
		fmt.Fprintln(Out, "Нет записей")
		return nil
	}
	for _, e := range listing.Entries {
		printEntry(Out, e)
	}
	printStats(app.Catalog.Stats(listing.Entries))
	return nil
}

type browseCmd struct{}

func (browseCmd) Name() string { return "browse" }
func (browseCmd) Description() string {
	return "Постраничный просмотр списка"
}
func (browseCmd) Usage() string { return "browse [--page N] [--size 4|8|12|16]" }

func (browseCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	page := fs.Int("page", 1, "номер страницы")
	size := fs.Int("size", cfg.PageSize, "размер страницы")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	app, done, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	listing, err := app.Catalog.List(ctx)
	if err != nil {
		return err
	}
	printWarnings(listing.Warnings)
	p := service.Paginate(listing.Entries, *page, service.NormalizePageSize(*size))
	fmt.Fprintf(Out, "Страница %d/%d (всего: %d)\n", p.Page, p.Pages, p.Total)
	for _, e := range p.Entries {
		printEntry(Out, e)
	}
	printStats(app.Catalog.Stats(listing.Entries))
	return nil
}

type showCmd struct{}

func (showCmd) Name() string      { return "show" }
func (showCmd) Aliases() []string { return []string{"get"} }
func (showCmd) Description() string {
	return "Показать запись по ссылке local_<id> или api_<id>"
}
func (showCmd) Usage() string { return "show <ref>" }

func (showCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
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

	e, err := app.Catalog.Get(ctx, ref)
	if err != nil {
		return err
	}
	printDetails(Out, e)
	return nil
}

func printWarnings(ws []string) {
	for _, w := range ws {
		fmt.Fprintf(Out, "Внимание: %s\n", w)
	}
}

func printStats(st model.Stats) {
	fmt.Fprintf(Out, "Всего: %d  API: %d  локальных: %d  избранных: %d\n", st.Total, st.Remote, st.Local, st.Favorites)
}

func init() {
	RegisterCmd(itemsCmd{})
	RegisterCmd(browseCmd{})
	RegisterCmd(showCmd{})
}
