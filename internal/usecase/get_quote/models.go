package get_quote

import (
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Request запрос расчёта стоимости
type Request struct {
	Category  domain.Category
	Species   domain.Species
	ServiceID string
	Size      *domain.SizeTier
	StartDate *time.Time
	EndDate   *time.Time
	AddonIDs  []string
}

// Stay период пансиона
type Stay struct {
	Enabled    bool
	Editable   bool
	EndDate    *time.Time
	MinEndDate *time.Time
	Nights     *int
}

// Response расчёт стоимости.
// StartingFrom - цена "от": для тарифной услуги ещё не выбран размер.
type Response struct {
	ServiceName  string
	Amount       float64
	UnitLabel    string
	StartingFrom bool
	RequiresSize bool
	AddonAmount  float64
	TotalAmount  float64
	Stay         *Stay // только Boarding
}
