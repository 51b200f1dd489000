package quote

import (
	"math/rand"
	"time"
)

// WildcardCategory - синтетическая категория "все записи"
const WildcardCategory = "all"

// Categories возвращает стабильный список категорий без дубликатов
// в порядке первого появления, с wildcard первым элементом
func Categories(quotes []Quote) []string {
	categories := []string{WildcardCategory}
	seen := make(map[string]bool, len(quotes))
	for _, q := range quotes {
		if seen[q.Category] {
			continue
		}
		seen[q.Category] = true
		categories = append(categories, q.Category)
	}
	return categories
}

// Filter возвращает записи выбранной категории. Пустая категория и
// wildcard означают весь набор.
func Filter(quotes []Quote, category string) []Quote {
	if category == "" || category == WildcardCategory {
		return quotes
	}
	var filtered []Quote
	for _, q := range quotes {
		if q.Category == category {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

// Random выбирает случайную запись набора. Порядок показа не несет
// смысла, поэтому выбор равновероятный.
func Random(quotes []Quote) (Quote, error) {
	if len(quotes) == 0 {
		return Quote{}, ErrEmptySet
	}
	return quotes[rand.Intn(len(quotes))], nil
}

// Seed - встроенный стартовый набор, используется когда снапшот
// отсутствует или не читается
func Seed() []Quote {
	now := time.Now().UnixMilli()
	return []Quote{
		{
			ID:        localPrefix + "seed-1",
			Source:    SourceLocal,
			Text:      "The best way to get started is to quit talking and begin doing",
			Category:  "Motivation",
			UpdatedAt: now,
		},
		{
			ID:        localPrefix + "seed-2",
			Source:    SourceLocal,
			Text:      "Don't let yesterday take up too much of today",
			Category:  "Inspiration",
			UpdatedAt: now,
		},
		{
			ID:        localPrefix + "seed-3",
			Source:    SourceLocal,
			Text:      "It always seems impossible until it's done",
			Category:  "Motivation",
			UpdatedAt: now,
		},
	}
}
