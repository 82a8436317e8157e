package availability

import "github.com/m04kA/SMC-SalonScheduling/internal/domain"

// WeekResult неделя в том виде, в каком её вернул salon API
type WeekResult struct {
	Week *domain.WeeklyAvailability
	// Violations нарушения в данных сервера, неделя при этом все равно принимается
	Violations domain.ValidationErrors
	// ChangedSinceLastSeen неделя на сервере отличается от последнего снимка шлюза
	ChangedSinceLastSeen bool
}
