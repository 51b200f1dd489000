package quote

import (
	"encoding/json"
	"fmt"
)

// ImportSummary - итог пакетного импорта для показа пользователю
type ImportSummary struct {
	Imported int `json:"imported"`
	Dropped  int `json:"dropped"`
}

// ImportJSON разбирает импортируемый файл: JSON-массив кандидатов.
// Если верхний уровень не массив - весь импорт отклоняется (ErrNotAList),
// частичное применение недопустимо. Невалидные элементы массива молча
// отбрасываются и учитываются в сводке, пакет продолжается.
func ImportJSON(data []byte) ([]Quote, ImportSummary, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, ImportSummary{}, fmt.Errorf("%w: %v", ErrNotAList, err)
	}

	var (
		quotes  []Quote
		summary ImportSummary
	)
	for _, raw := range elements {
		var c Candidate
		if err := json.Unmarshal(raw, &c); err != nil {
			summary.Dropped++
			continue
		}
		q, err := Normalize(c)
		if err != nil {
			summary.Dropped++
			continue
		}
		quotes = append(quotes, q)
		summary.Imported++
	}

	return quotes, summary, nil
}

// ExportJSON сериализует полный набор записей в отформатированный JSON
func ExportJSON(quotes []Quote) ([]byte, error) {
	data, err := json.MarshalIndent(quotes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quotes: %w", err)
	}
	return data, nil
}
