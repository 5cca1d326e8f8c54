package service

import "BrainrotDex/internal/model"

const samplePlaceholder = "/api/placeholder/300/200"

// sampleItems: демонстрационные записи для пустого каталога.
func sampleItems() []model.Item {
	return []model.Item{
		{
			Name:        "Alpha Grindset",
			Cost:        1000,
			Income:      150,
			Image:       samplePlaceholder,
			Rarity:      "Comum",
			Description: "O início da jornada sigma",
		},
		{
			Name:        "Beta Mindset",
			Cost:        2500,
			Income:      300,
			Image:       samplePlaceholder,
			Rarity:      "Incomum",
			Description: "Evitando a mentalidade beta",
		},
		{
			Name:        "Sigma Male",
			Cost:        5000,
			Income:      750,
			Favorite:    true,
			Image:       samplePlaceholder,
			Rarity:      "Raro",
			Description: "O verdadeiro sigma male",
		},
	}
}

// SeedSamples добавляет демонстрационные записи, только если локальный каталог пуст.
// Возвращает число добавленных записей.
func (c *Catalog) SeedSamples() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items.GetAll()) > 0 {
		return 0, nil
	}
	n := 0
	for _, s := range sampleItems() {
		created, err := c.items.Create(s)
		if err != nil {
			return n, err
		}
		n++
		if created.Favorite {
			if err := c.favs.Add(model.NewFavorite(created, model.OriginLocal)); err != nil {
				return n, err
			}
		}
	}
	c.logger.Infow("sample items seeded", "count", n)
	return n, nil
}

// ClearAll удаляет все локальные записи и избранное.
func (c *Catalog) ClearAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.items.Clear(); err != nil {
		return err
	}
	if err := c.favs.Clear(); err != nil {
		return err
	}
	c.logger.Infow("all local data cleared")
	return nil
}
