package quote

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Source - происхождение записи: создана локально или получена с сервера
type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
)

const (
	localPrefix  = "loc-"
	remotePrefix = "srv-"
)

// Quote - цитата, единственная доменная сущность.
// ID хранится в полной форме с префиксом (loc-/srv-) ради стабильной
// идентичности в снапшотах и экспорте, но ветвление всегда идет по Source,
// а не по разбору строки.
type Quote struct {
	ID        string `json:"id"`
	Source    Source `json:"source,omitempty"`
	Text      string `json:"text"`
	Category  string `json:"category"`
	UpdatedAt int64  `json:"updatedAt"`
	Pending   bool   `json:"pending"`
}

// Candidate - структурно недоверенный входной элемент (импорт, старый
// снапшот, маппинг серверного ответа) до нормализации
type Candidate struct {
	ID        string `json:"id"`
	Source    Source `json:"source"`
	Text      string `json:"text"`
	Category  string `json:"category"`
	UpdatedAt int64  `json:"updatedAt"`
	Pending   bool   `json:"pending"`
}

// NewLocalID строит идентификатор локальной записи: loc-<millis>-<суффикс>.
// Суффикс нужен, чтобы две записи, созданные в одну миллисекунду,
// не столкнулись.
func NewLocalID() string {
	return fmt.Sprintf("%s%d-%s", localPrefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}

// RemoteID строит идентификатор записи с известным серверным аналогом
func RemoteID(remote string) string {
	return remotePrefix + remote
}

// sourceFromID восстанавливает происхождение по префиксу идентификатора.
// Используется только при нормализации старых снапшотов, где поля source
// еще не было.
func sourceFromID(id string) Source {
	if strings.HasPrefix(id, remotePrefix) {
		return SourceRemote
	}
	return SourceLocal
}
