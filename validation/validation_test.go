package validation

import (
	"errors"
	"strings"
	"testing"
)

type sampleConfig struct {
	Level      string  `mapstructure:"level" validate:"required,oneof=debug info warn"`
	Endpoint   string  `mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	SampleRate float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

func TestValidatePassesValidStruct(t *testing.T) {
	cfg := sampleConfig{Level: "info", Endpoint: "localhost:4318", SampleRate: 0.5}
	if err := Validate(&cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateReportsEveryFailedField(t *testing.T) {
	cfg := sampleConfig{Level: "loud", SampleRate: 2.0}

	err := Validate(&cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *validation.Error, got %T", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d: %v", len(verr.Fields), verr.Fields)
	}
}

func TestValidateUsesMapstructureFieldNames(t *testing.T) {
	cfg := sampleConfig{Level: "info", SampleRate: -1}

	err := Validate(&cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "sample_rate") {
		t.Errorf("expected field named by its mapstructure tag, got: %v", err)
	}
}
