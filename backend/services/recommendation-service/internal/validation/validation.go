package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"chargesmart/backend/services/recommendation-service/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("connector", func(fl validator.FieldLevel) bool {
		return models.KnownConnector(models.ConnectorType(fl.Field().String()))
	})
	_ = v.RegisterValidation("batterytype", func(fl validator.FieldLevel) bool {
		return models.KnownBatteryType(models.BatteryType(fl.Field().String()))
	})
	return v
}

// Query checks the bounds and enum fields of a recommendation query.
func Query(q models.Query) error {
	err := validate.Struct(q)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "gte", "lte":
		switch fe.Field() {
		case "Lat":
			return "lat must be between -90 and 90"
		case "Lon":
			return "lon must be between -180 and 180"
		case "BatteryPct":
			return "battery must be between 0 and 100"
		}
	case "connector":
		return fmt.Sprintf("connector %q is not supported", fe.Value())
	case "batterytype":
		return fmt.Sprintf("battery_type %q is not supported", fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}
