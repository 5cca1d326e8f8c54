package model

// Favorite: копия записи, отмеченной пользователем. Ключ в избранном: Ref (origin + id исходной записи).
type Favorite struct {
	Item
	Origin Origin `json:"origin,omitempty"`
}

// NewFavorite снимает копию записи для избранного.
func NewFavorite(it Item, origin Origin) Favorite {
	it.Favorite = true
	return Favorite{Item: it, Origin: origin}
}

// Ref возвращает ссылку на исходную запись.
func (f Favorite) Ref() Ref {
	if f.Origin == OriginRemote {
		return RemoteRef(f.ID)
	}
	return LocalRef(f.ID)
}

// Entry: запись объединённого списка (локальные + внешний API).
type Entry struct {
	Item
	Ref         Ref  `json:"ref"`
	IsFromAPI   bool `json:"isFromAPI"`
	UserCreated bool `json:"userCreated"`
}

// LocalEntry оборачивает локальную запись.
func LocalEntry(it Item) Entry {
	return Entry{Item: it, Ref: LocalRef(it.ID), IsFromAPI: false, UserCreated: true}
}

// RemoteEntry оборачивает запись внешнего API.
func RemoteEntry(r RemoteItem) Entry {
	it := r.ToItem()
	return Entry{Item: it, Ref: RemoteRef(it.ID), IsFromAPI: true, UserCreated: false}
}
