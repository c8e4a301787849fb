// Package web defines common components for a web application.
package web

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// JSONError provides type for explicit json encoded error response.
type JSONError struct {
	Error string `json:"error"`
}

// Error wraps a given err into json frinedly struct.
func Error(err error) JSONError {
	return JSONError{Error: err.Error()}
}

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken          string    `json:"access_token,omitempty"`
	AccessTokenExpiresAt time.Time `json:"access_token_expires_at,omitempty"`
	Data                 any       `json:"data,omitempty"`
	Error                string    `json:"error,omitempty"`
}

// GetErrorMsg builds a readable message from the first binding
// validation failure.
func GetErrorMsg(ve validator.ValidationErrors) string {
	field := ve[0]

	switch field.Tag() {
	case "required":
		return field.Field() + " field is required"
	case "email":
		return field.Field() + " field must contain a valid email"
	case "currency":
		return field.Field() + " field must contain a supported currency"
	case "min":
		return field.Field() + " field must be at least " + field.Param()
	case "max":
		return field.Field() + " field must be at most " + field.Param()
	case "len":
		return field.Field() + " field must have length " + field.Param()
	case "numeric":
		return field.Field() + " field must be numeric"
	default:
		return field.Field() + " field is invalid"
	}
}
