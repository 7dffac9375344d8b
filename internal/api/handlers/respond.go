package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

const (
	codeBadRequest   = "BadRequest"
	codeUnauthorized = "Unauthorized"
	codeForbidden    = "Forbidden"
	codeNotFound     = "NotFound"
	codeConflict     = "Conflict"
	codeInternal     = "InternalError"

	msgInternalError = "внутренняя ошибка сервера"

	maxBodyBytes = 1 << 20
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

var kindStatus = map[domain.ErrorKind]int{
	domain.KindMissingSizeTier:         http.StatusUnprocessableEntity,
	domain.KindInvalidPrice:            http.StatusUnprocessableEntity,
	domain.KindInvalidDateRange:        http.StatusUnprocessableEntity,
	domain.KindMissingSelection:        http.StatusUnprocessableEntity,
	domain.KindInvalidSelection:        http.StatusUnprocessableEntity,
	domain.KindSlotFull:                http.StatusConflict,
	domain.KindScheduleConflict:        http.StatusConflict,
	domain.KindNotModifiable:           http.StatusConflict,
	domain.KindAvailabilityCheckFailed: http.StatusServiceUnavailable,
	domain.KindAppointmentNotFound:     http.StatusNotFound,
	domain.KindPetNotFound:             http.StatusNotFound,
	domain.KindServiceNotFound:         http.StatusNotFound,
}

var kindMessages = map[domain.ErrorKind]string{
	domain.KindMissingSizeTier:         "для этой услуги нужно выбрать размер питомца",
	domain.KindInvalidPrice:            "для услуги не задана корректная цена",
	domain.KindInvalidDateRange:        "некорректный период пребывания",
	domain.KindMissingSelection:        "не все обязательные поля выбраны",
	domain.KindInvalidSelection:        "некорректный выбор",
	domain.KindSlotFull:                "на это время уже нет свободных мест",
	domain.KindScheduleConflict:        "на эту дату и время уже есть другая запись",
	domain.KindNotModifiable:           "запись завершена или отменена и не может быть изменена",
	domain.KindAvailabilityCheckFailed: "не удалось проверить доступность, попробуйте позже",
	domain.KindAppointmentNotFound:     "запись не найдена",
	domain.KindPetNotFound:             "питомец не найден",
	domain.KindServiceNotFound:         "услуга не найдена",
}

var validate = validator.New()

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError отправляет ошибку с кодом по HTTP статусу
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: codeForStatus(status), Message: message})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondUnauthorized 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondConflict 409
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondInternalError 500
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondKindError отвечает по виду доменной ошибки.
// Возвращает false, если в цепочке нет доменной ошибки и ответ не отправлен.
func RespondKindError(w http.ResponseWriter, err error) bool {
	return RespondKindErrorWithDetails(w, err, nil)
}

// RespondKindErrorWithDetails то же, что RespondKindError, с дополнительными данными в ответе
func RespondKindErrorWithDetails(w http.ResponseWriter, err error, details interface{}) bool {
	kind, ok := domain.KindOf(err)
	if !ok {
		return false
	}
	status, ok := kindStatus[kind]
	if !ok {
		return false
	}
	RespondJSON(w, status, ErrorResponse{Code: string(kind), Message: kindMessages[kind], Details: details})
	return true
}

// DecodeJSON декодирует тело запроса; неизвестные поля отклоняются
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// DecodeAndValidate декодирует тело и проверяет теги validate
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := DecodeJSON(r, v); err != nil {
		return err
	}
	return Validate(v)
}

// Validate проверяет структуру по тегам validate
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validation: %w", err)
	}
	return nil
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return codeBadRequest
	case http.StatusUnauthorized:
		return codeUnauthorized
	case http.StatusForbidden:
		return codeForbidden
	case http.StatusNotFound:
		return codeNotFound
	case http.StatusConflict:
		return codeConflict
	}
	return codeInternal
}
