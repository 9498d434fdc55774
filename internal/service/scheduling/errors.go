package scheduling

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("service not found")

	// ErrVariantNotFound возвращается, когда вариант услуги не найден
	ErrVariantNotFound = errors.New("service variant not found")

	// ErrSpecialistNotEligible возвращается, когда мастер не оказывает услугу или неактивен
	ErrSpecialistNotEligible = errors.New("specialist is not eligible for this service")

	// ErrInvalidTimezone возвращается при некорректном часовом поясе тенанта
	ErrInvalidTimezone = errors.New("tenant timezone is invalid")

	// ErrUpstreamUnavailable возвращается, когда каталог услуг недоступен
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("scheduling: internal error")
)
