package get_fully_booked_dates

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrVariantNotFound возвращается, когда вариант услуги не найден
	ErrVariantNotFound = errors.New("service variant not found")

	// ErrSpecialistNotEligible возвращается, когда мастер не оказывает услугу
	ErrSpecialistNotEligible = errors.New("specialist is not eligible for this service")

	// ErrUpstreamUnavailable возвращается, когда каталог услуг недоступен
	ErrUpstreamUnavailable = errors.New("availability is temporarily unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
