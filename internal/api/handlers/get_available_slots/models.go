package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-PetCareService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date        string         `json:"date"` // "2026-06-01"
	ServiceName string         `json:"serviceName"`
	Exempt      bool           `json:"exempt"`
	Slots       []SlotResponse `json:"slots"`
}

// SlotResponse слот с количеством свободных мест
type SlotResponse struct {
	Time           string `json:"time"`
	Booked         int    `json:"booked"`
	AvailableSpots int    `json:"availableSpots"`
	TotalSpots     int    `json:"totalSpots"`
}

// ToUseCaseRequest формирует запрос к use case из query параметров
func ToUseCaseRequest(serviceName, categoryStr, dateStr string) (*getAvailableSlots.Request, error) {
	category, ok := domain.ParseCategory(categoryStr)
	if !ok {
		return nil, fmt.Errorf("unknown category %q", categoryStr)
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceName: serviceName,
		Category:    category,
		Date:        date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			Time:           s.Time,
			Booked:         s.Booked,
			AvailableSpots: s.AvailableSpots,
			TotalSpots:     s.TotalSpots,
		}
	}

	return &AvailableSlotsResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		ServiceName: resp.ServiceName,
		Exempt:      resp.Exempt,
		Slots:       slots,
	}
}
