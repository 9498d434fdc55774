package scheduling

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/calendar"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Query параметры запроса доступности
type Query struct {
	TenantID     string
	ServiceID    string
	VariantName  string
	SpecialistID string // Пусто - режим "любой свободный мастер"
	// TotalDuration длительность корзины из нескольких услуг, переопределяет длительность услуги и варианта
	TotalDuration int
}

// AnyAvailable возвращает true, если мастер не выбран
func (q Query) AnyAvailable() bool {
	return q.SpecialistID == ""
}

// Plan всё, что нужно генератору слотов, кроме записей
type Plan struct {
	Settings        *domain.SchedulingSettings
	SettingsLevel   string
	Location        *time.Location
	Service         *domain.Service
	DurationMinutes int
	Staff           []*domain.StaffMember // Подходящие мастера в порядке тенанта
	Now             time.Time
}

// NotBefore самое раннее допустимое начало записи с учетом минимального уведомления
func (p *Plan) NotBefore() time.Time {
	return calendar.AddMinutes(p.Now, p.Settings.MinBookingNoticeMinutes)
}

// Today текущая дата в часовом поясе тенанта
func (p *Plan) Today() types.Date {
	return calendar.Today(p.Now, p.Location)
}

// LastBookableDate последняя дата горизонта записи, нулевая дата - без ограничения
func (p *Plan) LastBookableDate() types.Date {
	if !p.Settings.HasAdvanceBookingLimit() {
		return types.Date{}
	}
	return p.Today().AddDays(p.Settings.AdvanceBookingDays)
}

// BeyondHorizon возвращает true, если дата за пределами горизонта записи
func (p *Plan) BeyondHorizon(date types.Date) bool {
	last := p.LastBookableDate()
	return !last.IsZero() && date.After(last)
}

// Request параметры генератора на дату
func (p *Plan) Request(date types.Date) availability.Request {
	return availability.Request{
		Date:            date,
		Location:        p.Location,
		DurationMinutes: p.DurationMinutes,
		BufferMinutes:   p.Settings.BufferMinutes,
		StepMinutes:     p.Settings.SlotStepMinutes,
		NotBefore:       p.NotBefore(),
	}
}

// MonthRequest параметры индекса занятых дат месяца
func (p *Plan) MonthRequest(year int, month time.Month) availability.MonthRequest {
	return availability.MonthRequest{
		Year:             year,
		Month:            month,
		Location:         p.Location,
		DurationMinutes:  p.DurationMinutes,
		BufferMinutes:    p.Settings.BufferMinutes,
		StepMinutes:      p.Settings.SlotStepMinutes,
		NotBefore:        p.NotBefore(),
		LastBookableDate: p.LastBookableDate(),
	}
}

// StaffIDs идентификаторы подходящих мастеров
func (p *Plan) StaffIDs() []string {
	ids := make([]string, 0, len(p.Staff))
	for _, s := range p.Staff {
		ids = append(ids, s.ID)
	}
	return ids
}
