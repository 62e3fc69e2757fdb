package validation_test

import (
	"errors"
	"testing"

	"github.com/Leopold1975/whiskeys_catalog/internal/pkg/validation"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/domain/models"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"           validate:"required,max=255"`
	Year  *int   `json:"year,omitempty" validate:"omitempty,gte=1000,lte=9999"`
	Inner string `validate:"omitempty,url"`
}

func TestValidate(t *testing.T) {
	v := validation.New()

	year := 2012
	require.NoError(t, v.Validate(payload{Name: "Bourbon", Year: &year}))

	year = 12
	err := v.Validate(payload{Year: &year, Inner: "not a url"})

	var verr models.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, map[string]string{
		"name":  "This field may not be blank.",
		"year":  "Ensure this value is greater than or equal to 1000.",
		"Inner": "Enter a valid URL.",
	}, verr.Fields)
}
