package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"BrainrotDex/internal/model"
	"BrainrotDex/internal/store"
)

// ErrInvalidSnapshot: файл импорта не прошёл проверку. Состояние при этом не меняется.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// legacyItemsKey: ключ записей в старых резервных копиях.
const legacyItemsKey = "brainrots"

// Transfer: экспорт и импорт всех локальных данных.
type Transfer struct {
	cat *Catalog
	now func() time.Time
}

// NewTransfer создаёт сервис переноса поверх каталога. now == nil означает time.Now.
func NewTransfer(cat *Catalog, now func() time.Time) *Transfer {
	if now == nil {
		now = time.Now
	}
	return &Transfer{cat: cat, now: now}
}

// FileName: имя файла резервной копии на дату now.
func FileName(now time.Time) string {
	return "brainrots-backup-" + now.Format("2006-01-02") + ".json"
}

// FileName: имя файла резервной копии на текущую дату.
func (t *Transfer) FileName() string { return FileName(t.now()) }

// Snapshot собирает копию текущих данных.
func (t *Transfer) Snapshot() model.Snapshot {
	t.cat.mu.Lock()
	defer t.cat.mu.Unlock()
	return model.Snapshot{
		Items:      t.cat.items.GetAll(),
		Favorites:  t.cat.favs.GetAll(),
		ExportDate: t.now().UTC(),
		Version:    model.SnapshotVersion,
	}
}

// Export пишет снимок в w отформатированным JSON.
func (t *Transfer) Export(w io.Writer) error {
	b, err := json.MarshalIndent(t.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// ImportResult: сколько записей и избранного загружено.
type ImportResult struct {
	Items     int `json:"items"`
	Favorites int `json:"favorites"`
}

// Import заменяет все локальные данные содержимым снимка.
// Проверка выполняется до любой записи; обе коллекции заменяются одной транзакцией.
func (t *Transfer) Import(r io.Reader) (ImportResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read snapshot: %w", err)
	}
	items, favs, err := t.parse(raw)
	if err != nil {
		return ImportResult{}, err
	}

	t.cat.mu.Lock()
	defer t.cat.mu.Unlock()
	if err := store.ReplaceAll(t.cat.items, t.cat.favs, items, favs); err != nil {
		return ImportResult{}, err
	}
	t.cat.logger.Infow("snapshot imported", "items", len(items), "favorites", len(favs))
	return ImportResult{Items: len(items), Favorites: len(favs)}, nil
}

// importFavorite понимает старый формат, где у избранного внешнего API нет origin, но есть isFromAPI.
type importFavorite struct {
	model.Favorite
	IsFromAPI bool `json:"isFromAPI"`
}

func (t *Transfer) parse(raw []byte) ([]model.Item, []model.Favorite, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		return nil, nil, fmt.Errorf("%w: not a JSON object", ErrInvalidSnapshot)
	}

	rawItems, ok := doc["items"]
	if !ok {
		rawItems, ok = doc[legacyItemsKey]
	}
	if !ok || !isArray(rawItems) {
		return nil, nil, fmt.Errorf("%w: items must be an array", ErrInvalidSnapshot)
	}
	var items []model.Item
	if err := json.Unmarshal(rawItems, &items); err != nil {
		return nil, nil, fmt.Errorf("%w: items: %v", ErrInvalidSnapshot, err)
	}

	now := t.now().UTC()
	seen := make(map[string]struct{}, len(items))
	for i := range items {
		it := &items[i]
		if _, dup := seen[it.ID]; it.ID == "" || dup {
			it.ID = t.cat.items.GenerateID()
		}
		seen[it.ID] = struct{}{}
		if it.CreatedAt.IsZero() {
			it.CreatedAt = now
		}
		if it.UpdatedAt.IsZero() || it.UpdatedAt.Before(it.CreatedAt) {
			it.UpdatedAt = it.CreatedAt
		}
	}

	favs := []model.Favorite{}
	if rawFavs, ok := doc["favorites"]; ok && isArray(rawFavs) {
		var decoded []importFavorite
		if err := json.Unmarshal(rawFavs, &decoded); err != nil {
			return nil, nil, fmt.Errorf("%w: favorites: %v", ErrInvalidSnapshot, err)
		}
		favSeen := make(map[model.Ref]struct{}, len(decoded))
		for _, f := range decoded {
			if f.ID == "" {
				continue
			}
			if f.Origin == 0 {
				f.Origin = model.OriginLocal
				if f.IsFromAPI {
					f.Origin = model.OriginRemote
				}
			}
			ref := f.Favorite.Ref()
			if _, dup := favSeen[ref]; dup {
				continue
			}
			favSeen[ref] = struct{}{}
			favs = append(favs, f.Favorite)
		}
	}
	return items, favs, nil
}

func isArray(raw json.RawMessage) bool {
	b := bytes.TrimSpace(raw)
	return len(b) > 0 && b[0] == '['
}
