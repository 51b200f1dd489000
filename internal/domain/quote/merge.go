package quote

// Conflict - пара версий одной записи, в которой локальная несинхронизированная
// правка была вытеснена серверной версией
type Conflict struct {
	Local  Quote `json:"local"`
	Remote Quote `json:"remote"`
}

// Merge сводит локальный набор с полученным серверным по политике
// server-wins. Для каждой серверной записи s:
//   - нет локальной с тем же id - s вставляется как новая;
//   - локальная есть и pending=true - конфликт: пара попадает в отчет,
//     запись перезаписывается серверной версией с pending=false;
//   - локальная есть и pending=false - безусловная перезапись.
//
// Локальные записи без серверного аналога сохраняются нетронутыми:
// отсутствие на сервере не означает удаление. Входные срезы не мутируются.
func Merge(local, remote []Quote) ([]Quote, []Conflict) {
	merged := make([]Quote, len(local))
	copy(merged, local)

	index := make(map[string]int, len(merged))
	for i, q := range merged {
		index[q.ID] = i
	}

	var conflicts []Conflict
	for _, srv := range remote {
		srv.Pending = false
		srv.Source = SourceRemote

		i, ok := index[srv.ID]
		if !ok {
			merged = append(merged, srv)
			index[srv.ID] = len(merged) - 1
			continue
		}
		if merged[i].Pending {
			conflicts = append(conflicts, Conflict{Local: merged[i], Remote: srv})
		}
		merged[i] = srv
	}

	return merged, conflicts
}
