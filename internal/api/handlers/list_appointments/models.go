package list_appointments

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(query url.Values) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{}

	var err error
	if req.Date, err = parseDate(query.Get("date")); err != nil {
		return nil, err
	}
	if req.StartDate, err = parseDate(query.Get("startDate")); err != nil {
		return nil, err
	}
	if req.EndDate, err = parseDate(query.Get("endDate")); err != nil {
		return nil, err
	}

	if serviceName := query.Get("serviceName"); serviceName != "" {
		req.ServiceName = &serviceName
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if includeStr := query.Get("includeTerminal"); includeStr != "" {
		include, err := strconv.ParseBool(includeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeTerminal value: %w", err)
		}
		req.IncludeTerminal = include
	}

	return req, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
