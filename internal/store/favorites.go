package store

import (
	"sync"

	"BrainrotDex/internal/model"
	"BrainrotDex/internal/storage"
)

// FavoritesStore: множество избранного под ключом storage.KeyFavorites.
// Ключ записи: model.Ref (источник + id), локальный и внешний id "42" не пересекаются.
type FavoritesStore struct {
	mu sync.Mutex
	kv storage.KV
}

// NewFavoritesStore создаёт хранилище избранного.
func NewFavoritesStore(kv storage.KV) *FavoritesStore {
	return &FavoritesStore{kv: kv}
}

// GetAll возвращает избранное в порядке добавления.
func (s *FavoritesStore) GetAll() []model.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Add добавляет запись, если её ещё нет. Повторный вызов: успех без записи.
func (s *FavoritesStore) Add(f model.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref := f.Ref()
	favs := s.load()
	for _, existing := range favs {
		if existing.Ref() == ref {
			return nil
		}
	}
	favs = append(favs, f)
	if !s.kv.Set(storage.KeyFavorites, favs) {
		return ErrPersist
	}
	return nil
}

// Remove убирает ref из избранного. Отсутствующий ref: успех.
func (s *FavoritesStore) Remove(ref model.Ref) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	favs := s.load()
	kept := favs[:0]
	for _, f := range favs {
		if f.Ref() != ref {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(favs) {
		return nil
	}
	if !s.kv.Set(storage.KeyFavorites, kept) {
		return ErrPersist
	}
	return nil
}

// IsFavorite: проверка принадлежности.
func (s *FavoritesStore) IsFavorite(ref model.Ref) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.load() {
		if f.Ref() == ref {
			return true
		}
	}
	return false
}

// Refs возвращает множество ссылок избранного.
func (s *FavoritesStore) Refs() map[model.Ref]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	favs := s.load()
	set := make(map[model.Ref]struct{}, len(favs))
	for _, f := range favs {
		set[f.Ref()] = struct{}{}
	}
	return set
}

// Clear удаляет всё избранное.
func (s *FavoritesStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.kv.Remove(storage.KeyFavorites) {
		return ErrPersist
	}
	return nil
}

func (s *FavoritesStore) load() []model.Favorite {
	var favs []model.Favorite
	if !s.kv.Get(storage.KeyFavorites, &favs) || favs == nil {
		return []model.Favorite{}
	}
	return favs
}

// ReplaceAll атомарно заменяет обе коллекции. Блокирует оба хранилища (сначала записи, потом избранное).
// Используется импортом: либо заменены обе коллекции, либо ни одна.
func ReplaceAll(items *ItemStore, favs *FavoritesStore, newItems []model.Item, newFavs []model.Favorite) error {
	if err := CheckUniqueIDs(newItems); err != nil {
		return err
	}
	if newItems == nil {
		newItems = []model.Item{}
	}
	if newFavs == nil {
		newFavs = []model.Favorite{}
	}
	items.mu.Lock()
	defer items.mu.Unlock()
	favs.mu.Lock()
	defer favs.mu.Unlock()

	if !items.kv.SetMany(map[string]any{
		storage.KeyItems:     newItems,
		storage.KeyFavorites: newFavs,
	}) {
		return ErrPersist
	}
	return nil
}
