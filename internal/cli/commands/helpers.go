package commands

import (
	"flag"
	"fmt"
	"io"

	"BrainrotDex/internal/cli/bootstrap"
	"BrainrotDex/internal/config"
	"BrainrotDex/internal/model"
)

// openApp собирает сервисы по конфигу. done закрывает БД.
func openApp(cfg *config.Config) (*bootstrap.App, func(), error) {
	logger, err := bootstrap.NewLogger(cfg.Verbose)
	if err != nil {
		return nil, nil, err
	}
	app, cleanup, err := bootstrap.Open(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	done := func() {
		if err := cleanup(); err != nil {
			logger.Warnw("close storage failed", "error", err)
		}
		_ = logger.Sync()
	}
	return app, done, nil
}

// parseInterleaved разбирает флаги вперемешку с позиционными аргументами:
// стандартный flag останавливается на первом позиционном, здесь разбор продолжается.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var pos []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return pos, nil
		}
		pos = append(pos, args[0])
		args = args[1:]
	}
}

// itemFlags: общие флаги полей записи для add и edit.
type itemFlags struct {
	fs          *flag.FlagSet
	name        string
	cost        float64
	income      float64
	rarity      string
	img         string
	description string
	region      string
	location    string
	favorite    bool
	concluida   bool
}

func newItemFlags(cmd string) *itemFlags {
	f := &itemFlags{fs: flag.NewFlagSet(cmd, flag.ContinueOnError)}
	f.fs.SetOutput(io.Discard)
	f.fs.StringVar(&f.name, "name", "", "имя")
	f.fs.Float64Var(&f.cost, "cost", 0, "стоимость")
	f.fs.Float64Var(&f.income, "income", 0, "доход")
	f.fs.StringVar(&f.rarity, "rarity", "", "редкость")
	f.fs.StringVar(&f.img, "img", "", "URL изображения")
	f.fs.StringVar(&f.description, "description", "", "описание")
	f.fs.StringVar(&f.region, "region", "", "регион")
	f.fs.StringVar(&f.location, "location", "", "локация")
	f.fs.BoolVar(&f.favorite, "favorite", false, "в избранном")
	f.fs.BoolVar(&f.concluida, "concluida", false, "получен")
	return f
}

func (f *itemFlags) item(name string) model.Item {
	return model.Item{
		Name:        name,
		Cost:        f.cost,
		Income:      f.income,
		Rarity:      f.rarity,
		Image:       f.img,
		Description: f.description,
		Region:      f.region,
		Location:    f.location,
		Favorite:    f.favorite,
		Concluida:   f.concluida,
	}
}

// patch собирает ItemPatch только из явно заданных флагов.
func (f *itemFlags) patch() model.ItemPatch {
	var p model.ItemPatch
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			p.Name = &f.name
		case "cost":
			p.Cost = &f.cost
		case "income":
			p.Income = &f.income
		case "rarity":
			p.Rarity = &f.rarity
		case "img":
			p.Image = &f.img
		case "description":
			p.Description = &f.description
		case "region":
			p.Region = &f.region
		case "location":
			p.Location = &f.location
		case "favorite":
			p.Favorite = &f.favorite
		case "concluida":
			p.Concluida = &f.concluida
		}
	})
	return p
}

func printEntry(w io.Writer, e model.Entry) {
	mark := ""
	if e.Favorite {
		mark = " ★"
	}
	src := "local"
	if e.IsFromAPI {
		src = "api"
	}
	fmt.Fprintf(w, "- %-28s [%s] %s  cost=%g  income=%g%s\n", e.Ref, src, e.Name, e.Cost, e.Income, mark)
}

func printDetails(w io.Writer, e model.Entry) {
	fmt.Fprintf(w, "ref:         %s\n", e.Ref)
	fmt.Fprintf(w, "name:        %s\n", e.Name)
	fmt.Fprintf(w, "cost:        %g\n", e.Cost)
	fmt.Fprintf(w, "income:      %g\n", e.Income)
	fmt.Fprintf(w, "rarity:      %s\n", orDash(e.Rarity))
	fmt.Fprintf(w, "description: %s\n", orDash(e.Description))
	fmt.Fprintf(w, "region:      %s\n", orDash(e.Region))
	fmt.Fprintf(w, "location:    %s\n", orDash(e.Location))
	fmt.Fprintf(w, "image:       %s\n", orDash(e.Image))
	fmt.Fprintf(w, "favorite:    %t\n", e.Favorite)
	if !e.IsFromAPI {
		fmt.Fprintf(w, "concluida:   %t\n", e.Concluida)
		fmt.Fprintf(w, "created:     %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "updated:     %s\n", e.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
