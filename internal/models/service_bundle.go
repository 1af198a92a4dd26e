package models

import (
	"github.com/raywall/secure-string-parameter/internal/service"
)

// ServiceBundle contém os Services injetados no controller do recurso.
type ServiceBundle struct {
	ParameterService *service.SecureStringService
}
