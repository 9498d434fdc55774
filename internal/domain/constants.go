package domain

// Значения настроек по умолчанию
const (
	DefaultTimezone                = "Europe/London"
	DefaultSlotStepMinutes         = 15
	DefaultBufferMinutes           = 0
	DefaultMinBookingNoticeMinutes = 0
	DefaultAdvanceBookingDays      = 0 // 0 = без ограничений
)

// Ограничения для валидации настроек
const (
	MinSlotStepMinutes          = 5
	MaxSlotStepMinutes          = 240
	MinBufferMinutes            = 0
	MaxBufferMinutes            = 240
	MinBookingNoticeMinutes     = 0
	MaxBookingNoticeMinutes     = 10080 // 1 неделя
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365
	MaxServiceDurationMinutes   = 24 * 60
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// OccupyingStatuses статусы записей, которые блокируют слоты
var OccupyingStatuses = []AppointmentStatus{
	StatusPending,
	StatusReservedUnpaid,
	StatusConfirmed,
}
