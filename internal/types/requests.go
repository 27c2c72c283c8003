package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// AnalyzeRequest is the request to start an analysis. Resume and JD text may
// be empty strings; the engine still produces a complete well-formed result
// for empty documents. JDText and JDURL are mutually exclusive.
type AnalyzeRequest struct {
	ResumeText string `json:"resume_text"`
	JDText     string `json:"jd_text"`
	JDURL      string `json:"jd_url,omitempty" validate:"omitempty,url"`
}

// LoginRequest is the operator login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	if r.JDText != "" && r.JDURL != "" {
		return fmt.Errorf("jd_text and jd_url are mutually exclusive")
	}
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
