package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	postflighterrors "github.com/postflightdev/postflight/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	// Device nodes handed over by the installer always live under /dev.
	devicePathPattern = regexp.MustCompile(`^/dev/[a-zA-Z0-9/_.-]+$`)
	// ZFS pool naming rules: leading letter, then the documented safe set.
	poolNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.:-]*$`)
	// Device-mapper names as accepted by cryptsetup.
	mapperNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("device_path", func(fl validator.FieldLevel) bool {
			return devicePathPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("pool_name", func(fl validator.FieldLevel) bool {
			return poolNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("mapper_name", func(fl validator.FieldLevel) bool {
			return mapperNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("abs_path", func(fl validator.FieldLevel) bool {
			path := fl.Field().String()
			return strings.HasPrefix(path, "/") && !strings.Contains(path, "\x00")
		})

		// IFNAMSIZ bounds the name; the kernel additionally rejects
		// slashes and whitespace.
		_ = v.RegisterValidation("iface_name", func(fl validator.FieldLevel) bool {
			name := fl.Field().String()
			if len(name) == 0 || len(name) > 15 {
				return false
			}
			return !strings.ContainsAny(name, "/ \t\n")
		})

		validateInst = v
	})

	return validateInst
}

// ValidateConfig performs schema validation on the target configuration so a
// broken installer handoff fails before any probe runs.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return postflighterrors.NewConfigError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlFieldName(ve)
		msg := fmt.Sprintf("failed validation for rule '%s'", ve.Tag())
		return postflighterrors.NewConfigError(field, msg, err)
	}

	return postflighterrors.NewConfigError("config", err.Error(), err)
}

func yamlFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}
