package core

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// NewGameRequest carries everything needed to start a game
type NewGameRequest struct {
	White PlayerConfig `json:"white" validate:"required"`
	Black PlayerConfig `json:"black" validate:"required"`
	FEN   string       `json:"fen,omitempty" validate:"omitempty,max=100"`
}

// Validate checks struct tags and flattens validator errors into one message
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var details strings.Builder
	for _, e := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch e.Tag() {
		case "required":
			details.WriteString(fmt.Sprintf("%s is required", e.Field()))
		case "oneof":
			details.WriteString(fmt.Sprintf("%s must be one of [%s]", e.Field(), e.Param()))
		case "min":
			if e.Kind() == reflect.String {
				details.WriteString(fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must be at least %s", e.Field(), e.Param()))
			}
		case "max":
			if e.Kind() == reflect.String {
				details.WriteString(fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must be at most %s", e.Field(), e.Param()))
			}
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", e.Field(), e.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, details.String())
}
