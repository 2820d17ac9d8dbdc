package celltype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/xlingest-go/pkg/xlingest/models"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		typeName   string
		text       string
		allowEmpty bool
		want       models.Status
	}{
		{"bypass anything", "ByPass", "whatever", false, models.StatusSuccess},
		{"bypass empty", "byPass", "", false, models.StatusSuccess},

		{"string present", "String", "Ann", false, models.StatusSuccess},
		{"string empty required", "String", "", false, models.StatusError},
		{"string empty allowed", "string", "", true, models.StatusSuccess},

		{"decimal ok", "Decimal", "1,234.50", false, models.StatusSuccess},
		{"decimal one", "Decimal", "1", false, models.StatusSuccess},
		{"decimal zero", "Decimal", "0", false, models.StatusError},
		{"decimal below one", "Decimal", "0.99", false, models.StatusError},
		{"decimal garbage", "Decimal", "abc", false, models.StatusError},
		{"decimal negative", "Decimal", "-5", false, models.StatusError},
		{"decimal empty required", "Decimal", "", false, models.StatusError},
		{"decimal empty allowed", "Decimal", "", true, models.StatusError},

		{"date literal", "DateTime", "15/03/2020", false, models.StatusSuccess},
		{"date serial", "dateTime", "45", false, models.StatusSuccess},
		{"date serial zero", "DateTime", "0", false, models.StatusError},
		{"date serial negative", "DateTime", "-4", false, models.StatusError},
		{"date iso", "DateTime", "2020-03-15", false, models.StatusError},
		{"date empty", "DateTime", "", false, models.StatusSuccess},

		{"timespan days", "LiteralTimeSpan", "3d", false, models.StatusSuccess},
		{"timespan zero", "LiteralTimeSpan", "0s", false, models.StatusError},
		{"timespan zero wide days", "LiteralTimeSpan", "000d", false, models.StatusError},
		{"timespan zero wide hours", "LiteralTimeSpan", "0000h", false, models.StatusError},
		{"timespan zero literal", "LiteralTimeSpan", "00:00:00:00", false, models.StatusError},
		{"timespan no unit", "LiteralTimeSpan", "3 weeks", false, models.StatusError},
		{"timespan hours overflow", "LiteralTimeSpan", "25h", false, models.StatusError},
		{"timespan empty required", "LiteralTimeSpan", "", false, models.StatusError},
		{"timespan empty allowed", "LiteralTimeSpan", "", true, models.StatusError},

		{"bool TRUE", "Boolean", "TRUE", false, models.StatusSuccess},
		{"bool 0", "Boolean", "0", false, models.StatusSuccess},
		{"bool Yes", "Boolean", "Yes", false, models.StatusError},
		{"bool empty", "Boolean", "", true, models.StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.typeName, "Field", cell(tt.text), tt.allowEmpty)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Status)
			assert.Equal(t, "Field", got.Field)
			assert.Equal(t, 2, got.Row)
			assert.Equal(t, 3, got.Column)
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	ok, err := Validate("Decimal", "Amount", cell("10"), false)
	require.NoError(t, err)
	assert.Equal(t, "Amount parsed successfully. Row: 2, Col: 3", ok.Message)

	bad, err := Validate("Decimal", "Amount", cell("0"), false)
	require.NoError(t, err)
	assert.Equal(t, "Amount is in invalid format. Row: 2, Col: 3", bad.Message)
}

func TestValidate_Unsupported(t *testing.T) {
	_, err := Validate("no", "Legacy", cell("x"), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.EqualError(t, err, "there is no validator for Legacy")

	_, err = Validate("Money", "Legacy", cell("x"), true)
	assert.ErrorIs(t, err, ErrUnknownType)
}
