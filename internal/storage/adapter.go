// Package storage: адаптер key-value хранилища: JSON-значения по строковому ключу.
// Это единственное место, где поглощаются ошибки (де)сериализации и бэкенда:
// вызывающий код получает только bool.
package storage

import (
	"encoding/json"
	"errors"
	"reflect"

	"BrainrotDex/internal/repo"

	"go.uber.org/zap"
)

// Ключи коллекций.
const (
	KeyItems     = "brainrots"
	KeyFavorites = "favorites"
)

// KV: контракт адаптера, который используют хранилища записей и избранного.
type KV interface {
	Get(key string, dst any) bool
	Set(key string, value any) bool
	SetMany(values map[string]any) bool
	Remove(key string) bool
}

// Adapter: реализация KV поверх repo.Backend.
type Adapter struct {
	backend repo.Backend
	logger  *zap.SugaredLogger
}

var _ KV = (*Adapter)(nil)

// NewAdapter создаёт адаптер. logger может быть nil.
func NewAdapter(b repo.Backend, logger *zap.SugaredLogger) *Adapter {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Adapter{backend: b, logger: logger}
}

// Get декодирует значение ключа в dst. false: ключа нет, бэкенд недоступен или JSON повреждён;
// в этих случаях dst не меняется и вызывающий код остаётся со своим значением по умолчанию.
func (a *Adapter) Get(key string, dst any) bool {
	raw, err := a.backend.Read(key)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			a.logger.Errorw("storage: read failed", "key", key, "error", err)
		}
		return false
	}
	if len(raw) == 0 {
		return false
	}
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		a.logger.Errorw("storage: destination must be a non-nil pointer", "key", key)
		return false
	}
	// декодируем во временное значение того же типа: битый JSON не должен испортить dst частично
	tmp := reflect.New(rv.Type().Elem())
	if err := json.Unmarshal(raw, tmp.Interface()); err != nil {
		a.logger.Warnw("storage: corrupted value", "key", key, "error", err)
		return false
	}
	rv.Elem().Set(tmp.Elem())
	return true
}

// Set сериализует value и записывает его целиком.
func (a *Adapter) Set(key string, value any) bool {
	raw, err := json.Marshal(value)
	if err != nil {
		a.logger.Errorw("storage: marshal failed", "key", key, "error", err)
		return false
	}
	if err := a.backend.Write(key, raw); err != nil {
		a.logger.Errorw("storage: write failed", "key", key, "error", err)
		return false
	}
	return true
}

// SetMany записывает несколько ключей атомарно.
func (a *Adapter) SetMany(values map[string]any) bool {
	batch := make(map[string][]byte, len(values))
	for k, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			a.logger.Errorw("storage: marshal failed", "key", k, "error", err)
			return false
		}
		batch[k] = raw
	}
	if err := a.backend.WriteBatch(batch); err != nil {
		a.logger.Errorw("storage: batch write failed", "keys", len(batch), "error", err)
		return false
	}
	return true
}

// Remove удаляет ключ.
func (a *Adapter) Remove(key string) bool {
	if err := a.backend.Delete(key); err != nil {
		a.logger.Errorw("storage: delete failed", "key", key, "error", err)
		return false
	}
	return true
}
