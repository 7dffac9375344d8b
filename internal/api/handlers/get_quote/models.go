package get_quote

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	getQuote "github.com/m04kA/SMC-PetCareService/internal/usecase/get_quote"
)

// QuoteRequest HTTP request model
type QuoteRequest struct {
	Category  string   `json:"category" validate:"required"`
	Species   string   `json:"species" validate:"required"`
	ServiceID string   `json:"serviceId" validate:"required"`
	Size      *string  `json:"size,omitempty" validate:"omitempty,oneof=small medium large"`
	StartDate *string  `json:"startDate,omitempty"` // "2026-06-01"
	EndDate   *string  `json:"endDate,omitempty"`
	AddonIDs  []string `json:"addonIds,omitempty" validate:"max=10"`
}

// StayResponse период пансиона
type StayResponse struct {
	Enabled    bool    `json:"enabled"`
	Editable   bool    `json:"editable"`
	EndDate    *string `json:"endDate,omitempty"`
	MinEndDate *string `json:"minEndDate,omitempty"`
	Nights     *int    `json:"nights,omitempty"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	ServiceName  string        `json:"serviceName"`
	Amount       float64       `json:"amount"`
	UnitLabel    string        `json:"unitLabel"`
	StartingFrom bool          `json:"startingFrom"`
	RequiresSize bool          `json:"requiresSize"`
	AddonAmount  float64       `json:"addonAmount"`
	TotalAmount  float64       `json:"totalAmount"`
	Stay         *StayResponse `json:"stay,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuoteRequest) ToUseCaseRequest() (*getQuote.Request, error) {
	category, ok := domain.ParseCategory(r.Category)
	if !ok {
		return nil, fmt.Errorf("unknown category %q", r.Category)
	}
	species, ok := domain.ParseSpecies(r.Species)
	if !ok {
		return nil, fmt.Errorf("unknown species %q", r.Species)
	}

	req := &getQuote.Request{
		Category:  category,
		Species:   species,
		ServiceID: r.ServiceID,
		AddonIDs:  r.AddonIDs,
	}

	if r.Size != nil {
		size, _ := domain.ParseSizeTier(*r.Size)
		req.Size = &size
	}

	var err error
	if req.StartDate, err = parseOptionalDate(r.StartDate); err != nil {
		return nil, err
	}
	if req.EndDate, err = parseOptionalDate(r.EndDate); err != nil {
		return nil, err
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getQuote.Response) *QuoteResponse {
	out := &QuoteResponse{
		ServiceName:  resp.ServiceName,
		Amount:       resp.Amount,
		UnitLabel:    resp.UnitLabel,
		StartingFrom: resp.StartingFrom,
		RequiresSize: resp.RequiresSize,
		AddonAmount:  resp.AddonAmount,
		TotalAmount:  resp.TotalAmount,
	}
	if resp.Stay != nil {
		out.Stay = &StayResponse{
			Enabled:    resp.Stay.Enabled,
			Editable:   resp.Stay.Editable,
			EndDate:    formatDate(resp.Stay.EndDate),
			MinEndDate: formatDate(resp.Stay.MinEndDate),
			Nights:     resp.Stay.Nights,
		}
	}
	return out
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateFormat, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateFormat)
	return &s
}
