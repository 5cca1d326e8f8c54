package model

import "time"

// Item: локальная запись каталога (brainrot), созданная пользователем.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Cost        float64   `json:"cost"`
	Income      float64   `json:"income"`
	Rarity      string    `json:"rarity_1,omitempty"`
	Image       string    `json:"img_1,omitempty"`
	Description string    `json:"description,omitempty"`
	Region      string    `json:"region,omitempty"`
	Location    string    `json:"location,omitempty"`
	Favorite    bool      `json:"favorite"`
	Concluida   bool      `json:"concluida"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ItemPatch: частичное обновление записи. nil означает «не менять».
type ItemPatch struct {
	Name        *string  `json:"name,omitempty"`
	Cost        *float64 `json:"cost,omitempty"`
	Income      *float64 `json:"income,omitempty"`
	Rarity      *string  `json:"rarity_1,omitempty"`
	Image       *string  `json:"img_1,omitempty"`
	Description *string  `json:"description,omitempty"`
	Region      *string  `json:"region,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Favorite    *bool    `json:"favorite,omitempty"`
	Concluida   *bool    `json:"concluida,omitempty"`
}

// Empty сообщает, что патч ничего не меняет.
func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Cost == nil && p.Income == nil && p.Rarity == nil &&
		p.Image == nil && p.Description == nil && p.Region == nil && p.Location == nil &&
		p.Favorite == nil && p.Concluida == nil
}

// Apply возвращает копию it с применёнными полями патча. Идентификатор и метки времени не трогаются.
func (p ItemPatch) Apply(it Item) Item {
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Cost != nil {
		it.Cost = *p.Cost
	}
	if p.Income != nil {
		it.Income = *p.Income
	}
	if p.Rarity != nil {
		it.Rarity = *p.Rarity
	}
	if p.Image != nil {
		it.Image = *p.Image
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.Region != nil {
		it.Region = *p.Region
	}
	if p.Location != nil {
		it.Location = *p.Location
	}
	if p.Favorite != nil {
		it.Favorite = *p.Favorite
	}
	if p.Concluida != nil {
		it.Concluida = *p.Concluida
	}
	return it
}
