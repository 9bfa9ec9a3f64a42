package utils

import (
	"fmt"
	"strings"
)

// ValidateID validates an opaque identifier field
func ValidateID(fieldName, id string) error {
	if id == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	if len(id) > 255 {
		return fmt.Errorf("%s too long (max 255 characters)", fieldName)
	}
	return nil
}

// ValidateSurveyCode validates a survey code
func ValidateSurveyCode(surveyCode string) error {
	return ValidateID("survey code", surveyCode)
}

// ValidateRequired validates that a field is not empty
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateMaxLength validates maximum string length
func ValidateMaxLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%s exceeds maximum length of %d characters", fieldName, maxLength)
	}
	return nil
}

// SanitizeString removes dangerous characters from user input
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")
	input = strings.TrimSpace(input)
	return input
}
