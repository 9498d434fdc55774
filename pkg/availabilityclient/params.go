package availabilityclient

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Params параметры запроса слотов на дату
type Params struct {
	TenantID      string
	ServiceID     string
	VariantName   string
	SpecialistID  string // Пусто - любой свободный мастер
	TotalDuration int    // Длительность корзины услуг, 0 - не задана
	Any           bool
	Date          types.Date
}

// Key ключ кэша по полному набору параметров
func (p Params) Key() string {
	return fmt.Sprintf("slots|%s|%s|%s|%s|%d|%t|%s",
		p.TenantID, p.ServiceID, p.VariantName, p.SpecialistID, p.TotalDuration, p.Any, p.Date)
}

// Ready проверяет, что заданы параметры, без которых запрос не отправляется
func (p Params) Ready(requireDuration bool) bool {
	if p.TenantID == "" || p.ServiceID == "" || p.Date.IsZero() {
		return false
	}
	if requireDuration && p.VariantName == "" && p.TotalDuration <= 0 {
		return false
	}
	return true
}

// MonthParams параметры запроса полностью занятых дат месяца
type MonthParams struct {
	TenantID      string
	Year          int
	Month         time.Month
	SpecialistID  string
	ServiceID     string
	VariantName   string
	TotalDuration int
}

// Key ключ кэша по полному набору параметров
func (p MonthParams) Key() string {
	return fmt.Sprintf("month|%s|%04d-%02d|%s|%s|%s|%d",
		p.TenantID, p.Year, int(p.Month), p.SpecialistID, p.ServiceID, p.VariantName, p.TotalDuration)
}
