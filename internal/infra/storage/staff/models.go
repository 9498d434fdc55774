package staff

import "github.com/m04kA/SMC-AvailabilityService/pkg/types"

// Filter фильтр выборки мастеров с правилами
type Filter struct {
	TenantID string
	StaffIDs []string // Пусто - все активные мастера тенанта
	// Период, для которого загружаются индивидуальное расписание и отпуска (даты включительно)
	From types.Date
	To   types.Date
}
