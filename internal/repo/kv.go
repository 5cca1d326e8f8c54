package repo

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry: строка таблицы kv_entries.
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:191"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName фиксирует имя таблицы.
func (KVEntry) TableName() string { return "kv_entries" }

// KVRepository: Backend поверх gorm (SQLite или PostgreSQL).
type KVRepository struct {
	db *gorm.DB
}

var _ Backend = (*KVRepository)(nil)

// NewKVRepository создаёт репозиторий key-value поверх открытой БД.
func NewKVRepository(db *gorm.DB) *KVRepository {
	return &KVRepository{db: db}
}

// Read возвращает значение по ключу.
func (r *KVRepository) Read(key string) ([]byte, error) {
	var e KVEntry
	err := r.db.Where(keyEq(key)).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e.Value, nil
}

// Write делает upsert значения.
func (r *KVRepository) Write(key string, value []byte) error {
	return upsert(r.db, key, value)
}

// Delete удаляет ключ.
func (r *KVRepository) Delete(key string) error {
	return r.db.Where(keyEq(key)).Delete(&KVEntry{}).Error
}

// WriteBatch записывает все значения в одной транзакции.
func (r *KVRepository) WriteBatch(values map[string][]byte) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	// стабильный порядок: стабильные блокировки в PostgreSQL
	sort.Strings(keys)
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, k := range keys {
			if err := upsert(tx, k, values[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

// keyEq строит условие по колонке key с корректным экранированием имени.
func keyEq(key string) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: "key"}, Value: key}
}

func upsert(db *gorm.DB, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	e := &KVEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(e).Error
}
