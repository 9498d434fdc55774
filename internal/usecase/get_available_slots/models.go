package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/scheduling"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Сообщения для пустого ответа
const (
	MessageNoSlots  = "no available slots"
	MessagePastDate = "date is in the past"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	TenantID      string
	ServiceID     string
	VariantName   string
	SpecialistID  string // Пусто - любой свободный мастер
	TotalDuration int    // Длительность корзины услуг, 0 - не задана
	Any           bool   // Явный режим "любой свободный мастер"
	Date          types.Date
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

// cacheParams часть ключа кэша, кроме тенанта и даты
func (r *Request) cacheParams() string {
	return fmt.Sprintf("svc=%s|var=%s|staff=%s|total=%d", r.ServiceID, r.VariantName, r.SpecialistID, r.TotalDuration)
}

// Response модель ответа со списком доступных слотов.
// Сериализуется в кэш как есть.
type Response struct {
	Date            types.Date `json:"date"`
	Timezone        string     `json:"timezone"`
	DurationMinutes int        `json:"duration_minutes"`
	Slots           []Slot     `json:"slots"`
	Message         string     `json:"message,omitempty"`
}

// Slot модель временного слота
type Slot struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	StaffIDs []string  `json:"staff_ids"`
}
