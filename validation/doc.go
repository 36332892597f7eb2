// Package validation checks configuration structs and command input.
//
// Struct tag validation uses go-playground/validator and reports field names
// by their mapstructure key, so messages match what the user wrote in the
// config file:
//
//	type Config struct {
//	    Backend string `mapstructure:"backend" validate:"oneof=memory redis database"`
//	}
//	err := validation.Validate(cfg)
//
// Programmatic validation collects errors across several checks:
//
//	v := validation.New()
//	v.ObjectID("pipeline", pipelineID).ObjectID("step", stepID)
//	err := v.Validate()
//
// Both return an INVALID_INPUT AppError whose "fields" detail lists every
// failing field.
package validation
