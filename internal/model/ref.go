package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Origin: источник записи в объединённом списке.
type Origin int

const (
	OriginLocal Origin = iota + 1
	OriginRemote
)

// Префиксы внешнего представления Ref (совместимы со ссылками старого фронтенда).
const (
	LocalPrefix  = "local_"
	RemotePrefix = "api_"
)

// ErrBadRef is returned when an exposed id cannot be parsed.
var ErrBadRef = errors.New("invalid reference")

func (o Origin) String() string {
	switch o {
	case OriginLocal:
		return "local"
	case OriginRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// MarshalJSON пишет origin строкой.
func (o Origin) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON принимает "local"/"remote"; пустое значение трактуется как local.
func (o *Origin) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "local", "":
		*o = OriginLocal
	case "remote":
		*o = OriginRemote
	default:
		return fmt.Errorf("unknown origin %q", s)
	}
	return nil
}

// Ref адресует запись объединённого списка: источник + исходный id.
type Ref struct {
	Origin Origin
	ID     string
}

// LocalRef строит ссылку на локальную запись.
func LocalRef(id string) Ref { return Ref{Origin: OriginLocal, ID: id} }

// RemoteRef строит ссылку на запись внешнего API.
func RemoteRef(id string) Ref { return Ref{Origin: OriginRemote, ID: id} }

// Editable: изменять и удалять можно только локальные записи.
func (r Ref) Editable() bool { return r.Origin == OriginLocal }

// String возвращает внешнее представление: local_<id> или api_<id>.
func (r Ref) String() string {
	if r.Origin == OriginRemote {
		return RemotePrefix + r.ID
	}
	return LocalPrefix + r.ID
}

// ParseRef: обратная операция к String. Строка без префикса считается локальным id.
func ParseRef(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	var ref Ref
	switch {
	case strings.HasPrefix(s, RemotePrefix):
		ref = RemoteRef(strings.TrimPrefix(s, RemotePrefix))
	case strings.HasPrefix(s, LocalPrefix):
		ref = LocalRef(strings.TrimPrefix(s, LocalPrefix))
	default:
		ref = LocalRef(s)
	}
	if ref.ID == "" {
		return Ref{}, fmt.Errorf("%w: %q", ErrBadRef, s)
	}
	return ref, nil
}

// MarshalJSON пишет ref внешним представлением.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON разбирает внешнее представление.
func (r *Ref) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseRef(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
