package check_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-PetCareService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Available bool `json:"available"`
	Count     int  `json:"count"`
	Capacity  int  `json:"capacity"`
	Remaining int  `json:"remaining"`
	Exempt    bool `json:"exempt"`
}

// ToUseCaseRequest формирует запрос к use case из query параметров
func ToUseCaseRequest(serviceName, categoryStr, dateStr, timeStr string) (*checkAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &checkAvailability.Request{
		ServiceName: serviceName,
		Date:        date,
		Time:        timeStr,
	}

	if categoryStr != "" {
		category, ok := domain.ParseCategory(categoryStr)
		if !ok {
			return nil, fmt.Errorf("unknown category %q", categoryStr)
		}
		req.Category = category
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Available: resp.Available,
		Count:     resp.Slot.Booked,
		Capacity:  resp.Slot.Capacity,
		Remaining: resp.Slot.Remaining(),
		Exempt:    resp.Slot.Exempt,
	}
}
