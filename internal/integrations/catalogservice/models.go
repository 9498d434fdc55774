package catalogservice

import "github.com/m04kA/SMC-AvailabilityService/internal/domain"

// Service модель услуги из CatalogService
type Service struct {
	ID              string    `json:"id"`
	TenantID        string    `json:"tenant_id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	Variants        []Variant `json:"variants"`
	StaffIDs        []string  `json:"staff_ids"` // Пусто - услугу оказывает любой активный мастер
}

// Variant вариант услуги
type Variant struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

// ToDomain конвертирует ответ каталога в доменную модель
func (s *Service) ToDomain() *domain.Service {
	variants := make([]domain.ServiceVariant, 0, len(s.Variants))
	for _, v := range s.Variants {
		variants = append(variants, domain.ServiceVariant{Name: v.Name, DurationMinutes: v.DurationMinutes})
	}
	return &domain.Service{
		ID:              s.ID,
		TenantID:        s.TenantID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Variants:        variants,
		StaffIDs:        s.StaffIDs,
	}
}
