package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrVariantNotFound возвращается, когда вариант услуги не найден
	ErrVariantNotFound = errors.New("create_appointment: service variant not found")

	// ErrSpecialistNotEligible возвращается, когда мастер не оказывает услугу
	ErrSpecialistNotEligible = errors.New("create_appointment: specialist is not eligible for this service")

	// ErrInvalidDate возвращается, когда дата записи в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrTooLateToBook возвращается, когда запись нарушает минимальное время до начала
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда слот уже занят или больше не предлагается
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrUpstreamUnavailable возвращается, когда каталог услуг недоступен
	ErrUpstreamUnavailable = errors.New("create_appointment: catalog is temporarily unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
