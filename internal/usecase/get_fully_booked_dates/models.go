package get_fully_booked_dates

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/scheduling"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса индекса полностью занятых дат месяца
type Request struct {
	TenantID      string
	Year          int
	Month         time.Month
	SpecialistID  string // Пусто - любой свободный мастер
	ServiceID     string // Пусто - минимальная длительность, равная шагу сетки
	VariantName   string
	TotalDuration int
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

func (r *Request) cacheParams() string {
	return fmt.Sprintf("svc=%s|var=%s|staff=%s|total=%d", r.ServiceID, r.VariantName, r.SpecialistID, r.TotalDuration)
}

// Response модель ответа. Сериализуется в кэш как есть.
type Response struct {
	Year        int          `json:"year"`
	Month       time.Month   `json:"month"`
	FullyBooked []types.Date `json:"fully_booked"`
}
