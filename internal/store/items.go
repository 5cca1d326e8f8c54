// Package store: хранилища записей каталога и избранного поверх key-value адаптера.
// Каждая операция читает коллекцию целиком, меняет её и записывает целиком.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"BrainrotDex/internal/model"
	"BrainrotDex/internal/storage"
)

var (
	// ErrNotFound: записи с таким id нет.
	ErrNotFound = errors.New("item not found")
	// ErrPersist: адаптер не смог сохранить коллекцию.
	ErrPersist = errors.New("failed to persist collection")
	// ErrDuplicateID: в коллекции повторяется id.
	ErrDuplicateID = errors.New("duplicate item id")
)

// ItemStore: CRUD над коллекцией записей под ключом storage.KeyItems.
type ItemStore struct {
	mu  sync.Mutex
	kv  storage.KV
	ids *IDGenerator
	now func() time.Time
}

// NewItemStore создаёт хранилище записей. now == nil означает time.Now.
func NewItemStore(kv storage.KV, now func() time.Time) *ItemStore {
	if now == nil {
		now = time.Now
	}
	return &ItemStore{kv: kv, ids: NewIDGenerator(now), now: now}
}

// GenerateID выдаёт новый уникальный идентификатор.
func (s *ItemStore) GenerateID() string { return s.ids.Next() }

// GetAll возвращает записи в порядке добавления. Пустое или повреждённое хранилище: пустой список.
func (s *ItemStore) GetAll() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// GetByID ищет запись линейным проходом.
func (s *ItemStore) GetByID(id string) (model.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.load() {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}

// Create присваивает новый id, проставляет createdAt/updatedAt и сохраняет запись в конец коллекции.
// data передаётся по значению и не меняется.
func (s *ItemStore) Create(data model.Item) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	now := s.now().UTC()
	data.ID = s.ids.Next()
	data.CreatedAt = now
	data.UpdatedAt = now
	items = append(items, data)
	if !s.kv.Set(storage.KeyItems, items) {
		return model.Item{}, ErrPersist
	}
	return data, nil
}

// Update применяет патч к записи id. Если записи нет: ErrNotFound без записи в хранилище.
func (s *ItemStore) Update(id string, patch model.ItemPatch) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	idx := indexOf(items, id)
	if idx == -1 {
		return model.Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	prev := items[idx]
	updated := patch.Apply(prev)
	updated.UpdatedAt = s.stamp(prev.UpdatedAt)
	items[idx] = updated
	if !s.kv.Set(storage.KeyItems, items) {
		return model.Item{}, ErrPersist
	}
	return updated, nil
}

// Delete удаляет запись. true: запись была и удалена; false, nil: записи не было.
func (s *ItemStore) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	idx := indexOf(items, id)
	if idx == -1 {
		return false, nil
	}
	items = append(items[:idx], items[idx+1:]...)
	if !s.kv.Set(storage.KeyItems, items) {
		return false, ErrPersist
	}
	return true, nil
}

// Clear удаляет всю коллекцию.
func (s *ItemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.kv.Remove(storage.KeyItems) {
		return ErrPersist
	}
	return nil
}

// stamp возвращает текущее время, но не раньше prev: updatedAt не убывает.
func (s *ItemStore) stamp(prev time.Time) time.Time {
	now := s.now().UTC()
	if now.Before(prev) {
		return prev
	}
	return now
}

func (s *ItemStore) load() []model.Item {
	var items []model.Item
	if !s.kv.Get(storage.KeyItems, &items) || items == nil {
		return []model.Item{}
	}
	return items
}

func indexOf(items []model.Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// CheckUniqueIDs проверяет, что id непустые и не повторяются.
func CheckUniqueIDs(items []model.Item) error {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it.ID == "" {
			return errors.New("item without id")
		}
		if _, ok := seen[it.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}
