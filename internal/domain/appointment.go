package domain

import "time"

// AppointmentStatus статус записи клиента
type AppointmentStatus string

const (
	StatusPending           AppointmentStatus = "pending"
	StatusReservedUnpaid    AppointmentStatus = "reserved_unpaid"
	StatusConfirmed         AppointmentStatus = "confirmed"
	StatusCompleted         AppointmentStatus = "completed"
	StatusNoShow            AppointmentStatus = "no_show"
	StatusCancelled         AppointmentStatus = "cancelled"
	StatusCancelledByClient AppointmentStatus = "cancelled_by_client"
	StatusCancelledBySalon  AppointmentStatus = "cancelled_by_salon"
	StatusRefunded          AppointmentStatus = "refunded"
)

// Appointment существующая запись к мастеру
type Appointment struct {
	ID              int64
	TenantID        string
	StaffID         string
	ServiceID       string
	ClientID        string
	Start           time.Time
	DurationMinutes int
	Status          AppointmentStatus

	VariantName *string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// End момент окончания записи
func (a *Appointment) End() time.Time {
	return a.Start.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// IsOccupying возвращает true, если запись занимает время мастера
func (a *Appointment) IsOccupying() bool {
	return a.Status.IsOccupying()
}

// CanBeCancelled возвращает true, если запись ещё можно отменить
func (a *Appointment) CanBeCancelled() bool {
	return a.Status.IsOccupying()
}

// IsOccupying возвращает true для статусов, блокирующих слоты
func (s AppointmentStatus) IsOccupying() bool {
	for _, st := range OccupyingStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// IsCancelled возвращает true для всех вариантов отмены
func (s AppointmentStatus) IsCancelled() bool {
	return s == StatusCancelled || s == StatusCancelledByClient ||
		s == StatusCancelledBySalon || s == StatusRefunded
}

// IsValid проверяет, что статус известен
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusReservedUnpaid, StatusConfirmed, StatusCompleted, StatusNoShow,
		StatusCancelled, StatusCancelledByClient, StatusCancelledBySalon, StatusRefunded:
		return true
	}
	return false
}

// LedgerFilter фильтр выборки занятых интервалов
type LedgerFilter struct {
	TenantID string    // Обязательный параметр
	StaffIDs []string  // Пусто - все мастера тенанта
	From     time.Time // Начало периода (включительно)
	To       time.Time // Конец периода (не включительно)
}

// statusTransitions допустимые смены статуса, кроме отмены
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:           {StatusReservedUnpaid, StatusConfirmed},
	StatusReservedUnpaid:    {StatusConfirmed},
	StatusConfirmed:         {StatusCompleted, StatusNoShow},
	StatusCancelled:         {StatusRefunded},
	StatusCancelledByClient: {StatusRefunded},
	StatusCancelledBySalon:  {StatusRefunded},
}

// CanTransitionTo проверяет, что запись можно перевести в статус next.
// Отмена выполняется отдельной операцией.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, st := range statusTransitions[s] {
		if st == next {
			return true
		}
	}
	return false
}
