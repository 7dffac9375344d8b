package models

import (
	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Request модели

// ListEntriesRequest фильтр списка услуг
type ListEntriesRequest struct {
	Category *string
	Species  *string
}

// UpsertEntryRequest запрос на создание или изменение услуги каталога
type UpsertEntryRequest struct {
	Name            string             `json:"name" validate:"required,max=200"`
	Price           *float64           `json:"price,omitempty" validate:"omitempty,gt=0"`
	Pricing         map[string]float64 `json:"pricing,omitempty" validate:"omitempty,dive,keys,oneof=small medium large,endkeys,gt=0"`
	DurationMinutes *int               `json:"duration,omitempty" validate:"omitempty,gt=0,lte=1440"`
	DaycareType     *string            `json:"daycareType,omitempty"`
	BoardingPackage *string            `json:"boardingPackage,omitempty"`
	PricePerNight   *float64           `json:"pricePerNight,omitempty" validate:"omitempty,gt=0"`
}

// Response модели

// PriceSummary цена для отображения в каталоге
type PriceSummary struct {
	Amount       float64 `json:"amount"`
	UnitLabel    string  `json:"unitLabel"`
	StartingFrom bool    `json:"startingFrom"`
}

// EntryResponse услуга каталога
type EntryResponse struct {
	ID              string             `json:"id"`
	Category        string             `json:"category"`
	Species         string             `json:"species"`
	Name            string             `json:"name"`
	Price           *float64           `json:"price,omitempty"`
	Pricing         map[string]float64 `json:"pricing,omitempty"`
	DurationMinutes *int               `json:"duration,omitempty"`
	DaycareType     *string            `json:"daycareType,omitempty"`
	BoardingPackage *string            `json:"boardingPackage,omitempty"`
	PricePerNight   *float64           `json:"pricePerNight,omitempty"`
	RequiresSize    bool               `json:"requiresSize"`
	RequiresEndDate bool               `json:"requiresEndDate"`
	DisplayPrice    *PriceSummary      `json:"displayPrice,omitempty"`
}

// EntryListResponse список услуг каталога
type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// AddonResponse доп. услуга
type AddonResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// AddonListResponse список доп. услуг
type AddonListResponse struct {
	Addons []AddonResponse `json:"addons"`
}

// ToDomainEntry конвертирует запрос в domain модель (без проверки бизнес-правил)
func (r *UpsertEntryRequest) ToDomainEntry(category domain.Category, species domain.Species, id string) *domain.ServiceCatalogEntry {
	entry := &domain.ServiceCatalogEntry{
		ID:              id,
		Category:        category,
		Species:         species,
		Name:            r.Name,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		PricePerNight:   r.PricePerNight,
	}

	if len(r.Pricing) > 0 {
		entry.Pricing = make(map[domain.SizeTier]float64, len(r.Pricing))
		for k, v := range r.Pricing {
			if tier, ok := domain.ParseSizeTier(k); ok {
				entry.Pricing[tier] = v
			}
		}
	}
	if r.DaycareType != nil {
		if dt, ok := domain.ParseDaycareType(*r.DaycareType); ok {
			entry.DaycareType = &dt
		}
	}
	if r.BoardingPackage != nil {
		if pkg, ok := domain.ParseBoardingPackage(*r.BoardingPackage); ok {
			entry.BoardingPackage = &pkg
		}
	}

	return entry
}

// FromDomainEntry конвертирует domain модель в DTO
func FromDomainEntry(e *domain.ServiceCatalogEntry, display *PriceSummary) *EntryResponse {
	if e == nil {
		return nil
	}

	resp := &EntryResponse{
		ID:              e.ID,
		Category:        string(e.Category),
		Species:         string(e.Species),
		Name:            e.Name,
		Price:           e.Price,
		DurationMinutes: e.DurationMinutes,
		PricePerNight:   e.PricePerNight,
		RequiresSize:    e.RequiresSizeTier(e.Species),
		RequiresEndDate: e.RequiresEndDate(),
		DisplayPrice:    display,
	}

	if len(e.Pricing) > 0 {
		resp.Pricing = make(map[string]float64, len(e.Pricing))
		for k, v := range e.Pricing {
			resp.Pricing[string(k)] = v
		}
	}
	if e.DaycareType != nil {
		dt := string(*e.DaycareType)
		resp.DaycareType = &dt
	}
	if e.BoardingPackage != nil {
		pkg := string(*e.BoardingPackage)
		resp.BoardingPackage = &pkg
	}

	return resp
}

// FromDomainAddonList конвертирует список доп. услуг в DTO
func FromDomainAddonList(addons []*domain.Addon) *AddonListResponse {
	resp := &AddonListResponse{Addons: make([]AddonResponse, 0, len(addons))}
	for _, a := range addons {
		resp.Addons = append(resp.Addons, AddonResponse{ID: a.ID, Name: a.Name, Price: a.Price})
	}
	return resp
}
