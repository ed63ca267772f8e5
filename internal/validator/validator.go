// Package validator provides custom validation functions for Gin's binding
// engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"securecare/internal/training"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("cert_level", validateCertLevel)
		_ = v.RegisterValidation("requirement", validateRequirement)
	}
}

func validateCertLevel(fl validator.FieldLevel) bool {
	return training.Level(fl.Field().String()).Valid()
}

func validateRequirement(fl validator.FieldLevel) bool {
	switch training.RequirementKey(fl.Field().String()) {
	case training.KeyReliasAssigned, training.KeyReliasCompleted,
		training.KeyVideo, training.KeySession1, training.KeySession2,
		training.KeySession3, training.KeyConference, training.KeyAwarded:
		return true
	}
	return false
}
