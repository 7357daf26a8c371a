package dto

import "github.com/mindforge/mindforge-api/internal/pkg/apperrors"

// Envelope statuses
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Envelope is the uniform wrapper returned by every endpoint
type Envelope struct {
	Status     string                 `json:"status" example:"success" enums:"success,fail,error"`
	Message    string                 `json:"message,omitempty" example:"Operation completed successfully"`
	Results    *int                   `json:"results,omitempty" example:"10"`
	Pagination *PaginationMeta        `json:"pagination,omitempty"`
	Data       interface{}            `json:"data,omitempty"`
	Errors     []apperrors.FieldError `json:"errors,omitempty"`
}

// PaginationMeta describes the page a listing returned
type PaginationMeta struct {
	Page       int   `json:"page" example:"1"`
	Limit      int   `json:"limit" example:"10"`
	Total      int64 `json:"total" example:"42"`
	TotalPages int   `json:"totalPages" example:"5"`
	HasNext    bool  `json:"hasNext" example:"true"`
	HasPrev    bool  `json:"hasPrev" example:"false"`
}

// Success wraps data in a success envelope
func Success(data interface{}) Envelope {
	return Envelope{Status: StatusSuccess, Data: data}
}

// SuccessWithMessage wraps data and a human readable message
func SuccessWithMessage(data interface{}, message string) Envelope {
	return Envelope{Status: StatusSuccess, Data: data, Message: message}
}

// Failure builds an error envelope. 5xx codes use "error", everything else "fail".
func Failure(statusCode int, message string, fields []apperrors.FieldError) Envelope {
	status := StatusFail
	if statusCode >= 500 {
		status = StatusError
	}
	return Envelope{Status: status, Message: message, Errors: fields}
}
