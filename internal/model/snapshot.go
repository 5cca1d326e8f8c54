package model

import "time"

// SnapshotVersion: версия формата файла резервной копии.
const SnapshotVersion = "1.0"

// Snapshot: переносимая копия всех локальных данных.
type Snapshot struct {
	Items      []Item     `json:"items"`
	Favorites  []Favorite `json:"favorites"`
	ExportDate time.Time  `json:"exportDate"`
	Version    string     `json:"version"`
}

// Stats: счётчики объединённого списка.
type Stats struct {
	Total     int `json:"total"`
	Remote    int `json:"remote"`
	Local     int `json:"local"`
	Favorites int `json:"favorites"`
}
