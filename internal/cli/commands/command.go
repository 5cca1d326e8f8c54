package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"BrainrotDex/internal/config"
)

// ErrUsage возвращается командой при неверных аргументах: диспетчер печатает её usage.
var ErrUsage = errors.New("usage")

// Command: подкоманда CLI каталога.
type Command interface {
	// Name: имя команды, как его набирает пользователь ("show").
	Name() string
	// Description: одна строка для общей справки.
	Description() string
	// Usage: строка вызова без имени бинаря ("show <ref>").
	Usage() string
	// Run выполняет команду; args без имени команды.
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

// Aliased реализуют команды с короткими синонимами (ls, rm).
type Aliased interface {
	Aliases() []string
}

var (
	registry = map[string]Command{}
	aliases  = map[string]string{}
)

// Out: общий writer для вывода CLI. По умолчанию os.Stdout, в тестах подменяется.
var Out io.Writer = os.Stdout

// RegisterCmd добавляет команду и её синонимы. Вызывается из init() файла команды.
func RegisterCmd(cmd Command) {
	registry[cmd.Name()] = cmd
	if a, ok := cmd.(Aliased); ok {
		for _, alias := range a.Aliases() {
			aliases[alias] = cmd.Name()
		}
	}
}

// Get ищет команду по имени или синониму, без учёта регистра.
func Get(name string) (Command, bool) {
	name = strings.ToLower(name)
	if target, ok := aliases[name]; ok {
		name = target
	}
	c, ok := registry[name]
	return c, ok
}

// List возвращает команды, отсортированные по имени.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// suggest подбирает команды, чьё имя начинается с name или содержит его.
func suggest(name string) []string {
	var out []string
	for _, c := range List() {
		if strings.HasPrefix(c.Name(), name) || (len(name) > 2 && strings.Contains(c.Name(), name)) {
			out = append(out, c.Name())
		}
	}
	return out
}

// FormatGlobalUsage собирает общую справку: команды, глобальные флаги и переменные окружения.
func FormatGlobalUsage() string {
	lines := []string{
		"BrainrotDex CLI: каталог brainrot-персонажей (внешний API + локальные записи)",
		"",
		"Usage:",
		"  brainrots [flags] <command> [args]",
		"  brainrots help <command>",
		"",
		"Commands:",
	}
	for _, c := range List() {
		desc := c.Description()
		if a, ok := c.(Aliased); ok {
			desc += " (" + strings.Join(a.Aliases(), ", ") + ")"
		}
		lines = append(lines, fmt.Sprintf("  %-44s %s", c.Usage(), desc))
	}
	lines = append(lines,
		"",
		"Flags:",
		"  -d <dsn>             postgres://... или путь к файлу SQLite",
		"  -memory              данные только в памяти процесса",
		"  -remote <url|off>    base URL внешнего API, off: без него",
		"  -remote-timeout <d>  таймаут запросов к API",
		"  -page-size <n>       4, 8, 12 или 16",
		"  -v                   подробный лог",
		"",
		"Environment: DATABASE_URI, REMOTE_API_URL, REMOTE_TIMEOUT, PAGE_SIZE",
	)
	return strings.Join(lines, "\n") + "\n"
}

// FormatCommandUsage: справка по одной команде.
func FormatCommandUsage(c Command) string {
	s := fmt.Sprintf("Usage: %s\n  %s\n", c.Usage(), c.Description())
	if a, ok := c.(Aliased); ok {
		s += "  aliases: " + strings.Join(a.Aliases(), ", ") + "\n"
	}
	return s
}
