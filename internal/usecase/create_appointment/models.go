package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/scheduling"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	TenantID      string
	ClientID      string           // ID клиента из заголовка X-User-ID
	ServiceID     string           // ID услуги
	VariantName   string           // Вариант услуги (опционально)
	SpecialistID  string           // Пусто - первый свободный мастер
	TotalDuration int              // Длительность корзины услуг, 0 - не задана
	Date          types.Date       // Дата записи в часовом поясе тенанта
	StartTime     types.TimeString // Время начала (например, "10:00")
	Notes         *string          // Заметки (опционально)
}

func (r *Request) query() scheduling.Query {
	return scheduling.Query{
		TenantID:      r.TenantID,
		ServiceID:     r.ServiceID,
		VariantName:   r.VariantName,
		SpecialistID:  r.SpecialistID,
		TotalDuration: r.TotalDuration,
	}
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	TenantID        string
	StaffID         string // Закреплённый мастер
	ServiceID       string
	ClientID        string
	VariantName     *string
	Start           time.Time
	End             time.Time
	DurationMinutes int
	Status          string
	Notes           *string
	CreatedAt       time.Time
}
