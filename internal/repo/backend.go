package repo

import "errors"

// ErrNotFound возвращается Read, если ключа нет в хранилище.
var ErrNotFound = errors.New("key not found")

// Backend: порт долговременного key-value хранилища. Значения: сырые байты (JSON).
type Backend interface {
	// Read возвращает значение по ключу или ErrNotFound.
	Read(key string) ([]byte, error)

	// Write создаёт или заменяет значение.
	Write(key string, value []byte) error

	// Delete удаляет ключ. Отсутствующий ключ не ошибка.
	Delete(key string) error

	// WriteBatch записывает все значения атомарно: либо все, либо ни одного.
	WriteBatch(values map[string][]byte) error
}
