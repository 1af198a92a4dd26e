package repository

import (
	"errors"

	"github.com/aws/smithy-go"
)

// APIErrorCode devolve o código de erro smithy (ex.: "ThrottlingException") ou "".
func APIErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// isAPIErrorCode verifica o código de erro smithy APIError
func isAPIErrorCode(err error, code string) bool {
	if err == nil {
		return false
	}
	return APIErrorCode(err) == code
}
