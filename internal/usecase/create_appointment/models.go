package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Request выбор пользователя для записи
type Request struct {
	OwnerID   string
	PetID     string
	Category  domain.Category
	ServiceID string
	Size      *domain.SizeTier
	Date      *time.Time
	EndDate   *time.Time // только Boarding "7-Days+"
	Time      string     // "10:00"; для DayCare также HalfDay/FullDay
	AddonIDs  []string
	Notes     *string
}

// RequestFromSelection собирает запрос из выбора мастера записи
func RequestFromSelection(ownerID string, s *domain.BookingSelection) *Request {
	return &Request{
		OwnerID:   ownerID,
		PetID:     s.PetID,
		Category:  s.Category,
		ServiceID: s.ServiceID,
		Size:      s.Size,
		Date:      s.Date,
		EndDate:   s.EndDate,
		Time:      s.Time,
		AddonIDs:  s.AddonIDs,
		Notes:     s.Notes,
	}
}

// Response созданная запись
type Response struct {
	Appointment *domain.Appointment
	UnitLabel   string // единица цены базовой услуги
}
