// Package service: юзкейсы каталога: объединённый список (внешний API + локальные записи),
// избранное, перенос данных и служебные операции.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"BrainrotDex/internal/model"
	"BrainrotDex/internal/store"

	"go.uber.org/zap"
)

var (
	// ErrReadOnly: попытка изменить запись внешнего API.
	ErrReadOnly = errors.New("remote entries are read-only")
	// ErrInvalidItem: не прошла валидация полей записи.
	ErrInvalidItem = errors.New("invalid item")
	// ErrRemoteDisabled: внешний источник не настроен.
	ErrRemoteDisabled = errors.New("remote source is not configured")
)

// RemoteSource: внешний read-only источник записей.
type RemoteSource interface {
	List(ctx context.Context) ([]model.RemoteItem, error)
	Get(ctx context.Context, id string) (model.RemoteItem, error)
}

// Listing: объединённый список. Warnings непустой, если внешний источник не ответил.
type Listing struct {
	Entries  []model.Entry `json:"entries"`
	Warnings []string      `json:"warnings,omitempty"`
}

// Catalog объединяет локальные записи, избранное и внешний источник.
// Операции, затрагивающие оба хранилища, выполняются под mu.
type Catalog struct {
	mu     sync.Mutex
	items  *store.ItemStore
	favs   *store.FavoritesStore
	remote RemoteSource
	logger *zap.SugaredLogger
}

// NewCatalog создаёт каталог. remote может быть nil: тогда список только локальный.
func NewCatalog(items *store.ItemStore, favs *store.FavoritesStore, remote RemoteSource, logger *zap.SugaredLogger) *Catalog {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Catalog{items: items, favs: favs, remote: remote, logger: logger}
}

// List возвращает сначала записи внешнего API, затем локальные.
// Недоступность API не ошибка: в ответе будут только локальные записи и предупреждение.
func (c *Catalog) List(ctx context.Context) (Listing, error) {
	favRefs := c.favs.Refs()
	listing := Listing{Entries: []model.Entry{}}

	if c.remote != nil {
		remote, err := c.remote.List(ctx)
		switch {
		case err != nil && ctx.Err() != nil:
			return Listing{}, ctx.Err()
		case err != nil:
			c.logger.Warnw("remote list failed, showing local entries only", "error", err)
			listing.Warnings = append(listing.Warnings, fmt.Sprintf("showing local entries only: %v", err))
		default:
			for _, r := range remote {
				e := model.RemoteEntry(r)
				_, e.Favorite = favRefs[e.Ref]
				listing.Entries = append(listing.Entries, e)
			}
		}
	}

	for _, it := range c.items.GetAll() {
		e := model.LocalEntry(it)
		_, e.Favorite = favRefs[e.Ref]
		listing.Entries = append(listing.Entries, e)
	}
	return listing, nil
}

// Get ищет запись по ссылке: локальную в хранилище, внешнюю через API.
func (c *Catalog) Get(ctx context.Context, ref model.Ref) (model.Entry, error) {
	var e model.Entry
	switch ref.Origin {
	case model.OriginRemote:
		if c.remote == nil {
			return model.Entry{}, ErrRemoteDisabled
		}
		r, err := c.remote.Get(ctx, ref.ID)
		if err != nil {
			return model.Entry{}, err
		}
		e = model.RemoteEntry(r)
	default:
		it, ok := c.items.GetByID(ref.ID)
		if !ok {
			return model.Entry{}, fmt.Errorf("%w: %s", store.ErrNotFound, ref.ID)
		}
		e = model.LocalEntry(it)
	}
	e.Favorite = c.favs.IsFavorite(e.Ref)
	return e, nil
}

// Create добавляет локальную запись. id и метки времени из data игнорируются.
func (c *Catalog) Create(data model.Item) (model.Item, error) {
	if err := validateItem(data); err != nil {
		return model.Item{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	created, err := c.items.Create(data)
	if err != nil {
		return model.Item{}, err
	}
	if created.Favorite {
		if err := c.favs.Add(model.NewFavorite(created, model.OriginLocal)); err != nil {
			return created, err
		}
	}
	c.logger.Infow("item created", "id", created.ID, "name", created.Name)
	return created, nil
}

// Update применяет патч к локальной записи. Изменение favorite синхронизируется с избранным.
func (c *Catalog) Update(ref model.Ref, patch model.ItemPatch) (model.Item, error) {
	if !ref.Editable() {
		return model.Item{}, ErrReadOnly
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return model.Item{}, fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if (patch.Cost != nil && *patch.Cost < 0) || (patch.Income != nil && *patch.Income < 0) {
		return model.Item{}, fmt.Errorf("%w: cost and income must not be negative", ErrInvalidItem)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	updated, err := c.items.Update(ref.ID, patch)
	if err != nil {
		return model.Item{}, err
	}
	if patch.Favorite != nil {
		if *patch.Favorite {
			err = c.favs.Add(model.NewFavorite(updated, model.OriginLocal))
		} else {
			err = c.favs.Remove(ref)
		}
		if err != nil {
			return updated, err
		}
	}
	return updated, nil
}

// Delete удаляет локальную запись и её избранное. false, nil: записи не было.
func (c *Catalog) Delete(ref model.Ref) (bool, error) {
	if !ref.Editable() {
		return false, ErrReadOnly
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	removed, err := c.items.Delete(ref.ID)
	if err != nil || !removed {
		return removed, err
	}
	if err := c.favs.Remove(ref); err != nil {
		return true, err
	}
	c.logger.Infow("item deleted", "id", ref.ID)
	return true, nil
}

// ToggleFavorite переключает избранное. Возвращает новое состояние.
// Для локальных записей флаг favorite дублируется в саму запись.
func (c *Catalog) ToggleFavorite(ctx context.Context, ref model.Ref) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.favs.IsFavorite(ref) {
		if err := c.favs.Remove(ref); err != nil {
			return true, err
		}
		c.mirrorFlag(ref, false)
		return false, nil
	}

	var it model.Item
	switch ref.Origin {
	case model.OriginRemote:
		if c.remote == nil {
			return false, ErrRemoteDisabled
		}
		r, err := c.remote.Get(ctx, ref.ID)
		if err != nil {
			return false, err
		}
		it = r.ToItem()
	default:
		local, ok := c.items.GetByID(ref.ID)
		if !ok {
			return false, fmt.Errorf("%w: %s", store.ErrNotFound, ref.ID)
		}
		it = local
	}
	if err := c.favs.Add(model.NewFavorite(it, ref.Origin)); err != nil {
		return false, err
	}
	c.mirrorFlag(ref, true)
	return true, nil
}

// RemoveFavorite убирает ref из избранного и снимает флаг с локальной записи, если она есть.
func (c *Catalog) RemoveFavorite(ref model.Ref) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.favs.Remove(ref); err != nil {
		return err
	}
	c.mirrorFlag(ref, false)
	return nil
}

// Favorites возвращает избранное в порядке добавления.
func (c *Catalog) Favorites() []model.Favorite {
	return c.favs.GetAll()
}

// Stats считает записи списка по источникам.
func (c *Catalog) Stats(entries []model.Entry) model.Stats {
	st := model.Stats{Total: len(entries), Favorites: len(c.favs.GetAll())}
	for _, e := range entries {
		if e.IsFromAPI {
			st.Remote++
		} else {
			st.Local++
		}
	}
	return st
}

// mirrorFlag best-effort: запись могла быть удалена или быть внешней.
func (c *Catalog) mirrorFlag(ref model.Ref, fav bool) {
	if !ref.Editable() {
		return
	}
	if _, err := c.items.Update(ref.ID, model.ItemPatch{Favorite: &fav}); err != nil && !errors.Is(err, store.ErrNotFound) {
		c.logger.Warnw("failed to mirror favorite flag", "id", ref.ID, "error", err)
	}
}

func validateItem(it model.Item) error {
	if strings.TrimSpace(it.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if it.Cost < 0 || it.Income < 0 {
		return fmt.Errorf("%w: cost and income must not be negative", ErrInvalidItem)
	}
	return nil
}
