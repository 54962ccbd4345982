// Package validation validates configuration structs against their
// `validate` struct tags using go-playground/validator.
//
//	type Config struct {
//	    Level string `mapstructure:"level" validate:"oneof=debug info warn"`
//	}
//
//	if err := validation.Validate(&cfg); err != nil {
//	    // err is a *validation.Error listing every failed field
//	}
package validation
