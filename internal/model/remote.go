package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// RemoteID: идентификатор, присвоенный внешним API. Сервер отдаёт его числом или строкой.
type RemoteID string

// UnmarshalJSON принимает и число, и строку.
func (id *RemoteID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = RemoteID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("remote id: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*id = RemoteID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = RemoteID(n.String())
	return nil
}

// RemoteItem: запись, которую возвращает GET /brainrot и GET /brainrot/{id}.
type RemoteItem struct {
	ID          RemoteID `json:"id"`
	Name        string   `json:"name"`
	Image       string   `json:"img_1,omitempty"`
	Cost        float64  `json:"cost"`
	Income      float64  `json:"income"`
	Rarity      string   `json:"rarity_1,omitempty"`
	Description string   `json:"description,omitempty"`
	Region      string   `json:"region,omitempty"`
	Location    string   `json:"location,omitempty"`
}

// ToItem проецирует удалённую запись на локальную модель. Метки времени остаются нулевыми.
func (r RemoteItem) ToItem() Item {
	return Item{
		ID:          string(r.ID),
		Name:        r.Name,
		Image:       r.Image,
		Cost:        r.Cost,
		Income:      r.Income,
		Rarity:      r.Rarity,
		Description: r.Description,
		Region:      r.Region,
		Location:    r.Location,
	}
}
