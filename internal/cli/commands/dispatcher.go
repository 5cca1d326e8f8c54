package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"BrainrotDex/internal/api"
	"BrainrotDex/internal/config"
	"BrainrotDex/internal/service"
)

// Коды выхода CLI.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// Dispatch выполняет команду из args (позиционные аргументы после глобальных флагов)
// и возвращает код выхода процесса.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return exitUsage
	}

	name := strings.ToLower(args[0])
	switch name {
	case "help", "-h", "--help":
		return help(args[1:])
	}

	c, ok := Get(name)
	if !ok {
		unknown(name)
		return exitUsage
	}
	// brainrots show -h
	for _, a := range args[1:] {
		if a == "-h" || a == "--help" {
			fmt.Fprint(Out, FormatCommandUsage(c))
			return exitOK
		}
	}

	err := c.Run(ctx, cfg, args[1:])
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return exitUsage
	default:
		fmt.Fprintf(Out, "%s error: %v\n", c.Name(), err)
		if h := hint(err); h != "" {
			fmt.Fprintf(Out, "  hint: %s\n", h)
		}
		return exitError
	}
}

func help(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return exitOK
	}
	c, ok := Get(args[0])
	if !ok {
		unknown(args[0])
		return exitUsage
	}
	fmt.Fprint(Out, FormatCommandUsage(c))
	return exitOK
}

func unknown(name string) {
	fmt.Fprintf(Out, "Unknown command: %s\n", name)
	if s := suggest(name); len(s) > 0 {
		fmt.Fprintf(Out, "Did you mean: %s?\n", strings.Join(s, ", "))
	}
	fmt.Fprintln(Out)
	fmt.Fprint(Out, FormatGlobalUsage())
}

// hint подсказывает, что делать с типовыми ошибками сервиса.
func hint(err error) string {
	switch {
	case errors.Is(err, service.ErrRemoteDisabled):
		return "внешний API отключён (-remote off); уберите флаг или задайте REMOTE_API_URL"
	case errors.Is(err, api.ErrUnavailable):
		return "внешний API не отвечает, проверьте -remote / REMOTE_API_URL"
	case errors.Is(err, service.ErrReadOnly):
		return "записи api_* только для чтения, меняются только local_*"
	case errors.Is(err, service.ErrInvalidSnapshot):
		return "файл не похож на резервную копию BrainrotDex"
	default:
		return ""
	}
}
