package domain

// Service услуга салона из каталога
type Service struct {
	ID              string
	TenantID        string
	Name            string
	DurationMinutes int
	Variants        []ServiceVariant
	StaffIDs        []string // Пусто - услугу может оказать любой активный мастер
}

// ServiceVariant вариант услуги со своей длительностью (например, "Long hair")
type ServiceVariant struct {
	Name            string
	DurationMinutes int
}

// ResolveDuration возвращает длительность варианта или базовую длительность услуги.
// Второй результат false, если вариант указан, но не найден.
func (s *Service) ResolveDuration(variantName string) (int, bool) {
	if variantName == "" {
		return s.DurationMinutes, s.DurationMinutes > 0
	}
	for _, v := range s.Variants {
		if v.Name == variantName {
			return v.DurationMinutes, v.DurationMinutes > 0
		}
	}
	return 0, false
}

// IsStaffEligible проверяет, может ли мастер оказать услугу
func (s *Service) IsStaffEligible(staffID string) bool {
	if len(s.StaffIDs) == 0 {
		return true
	}
	for _, id := range s.StaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}
