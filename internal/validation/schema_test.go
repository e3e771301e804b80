package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentumRider/internal/domain"
)

var testSchema = Schema{
	Name: "test",
	Fields: []Field{
		{Name: "ticker", Type: TypeString, Rules: "required,ticker"},
		{Name: "includeName", Type: TypeBool, Default: false},
		{Name: "limit", Type: TypeInt, Optional: true, Rules: "gte=1,lte=100"},
	},
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	e, ok := domain.AsError(err)
	require.True(t, ok, "ожидалась *domain.Error")
	assert.Equal(t, domain.KindValidation, e.Kind)
	assert.Equal(t, domain.CodeValidation, e.Code)
	return e.Fields
}

func TestValidate_AppliesDefaults(t *testing.T) {
	out, err := Validate(testSchema, map[string]any{"ticker": "SPY"})
	require.NoError(t, err)
	assert.Equal(t, "SPY", out["ticker"])
	assert.Equal(t, false, out["includeName"])
	_, hasLimit := out["limit"]
	assert.False(t, hasLimit, "необязательное поле без default не появляется")
}

func TestValidate_CoercesQueryStrings(t *testing.T) {
	out, err := Validate(testSchema, map[string]any{"ticker": "brk.b", "includeName": "true", "limit": "10"})
	require.NoError(t, err)
	assert.Equal(t, true, out["includeName"])
	assert.Equal(t, 10, out["limit"])
}

func TestValidate_JSONNumbers(t *testing.T) {
	out, err := Validate(testSchema, map[string]any{"ticker": "QQQ", "includeName": true, "limit": float64(5)})
	require.NoError(t, err)
	assert.Equal(t, 5, out["limit"])
}

func TestValidate_RejectsUnknownField(t *testing.T) {
	_, err := Validate(testSchema, map[string]any{"ticker": "SPY", "foo": "bar"})
	fields := fieldErrors(t, err)
	assert.Equal(t, "unknown field", fields["foo"])
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		field   string
		want    string
	}{
		{name: "нет обязательного поля", payload: map[string]any{}, field: "ticker", want: "is required"},
		{name: "неверный тип bool", payload: map[string]any{"ticker": "SPY", "includeName": "yes please"}, field: "includeName", want: "must be a boolean"},
		{name: "неверный тип string", payload: map[string]any{"ticker": 42.0}, field: "ticker", want: "must be a string"},
		{name: "дробное вместо целого", payload: map[string]any{"ticker": "SPY", "limit": 1.5}, field: "limit", want: "must be an integer"},
		{name: "пустой тикер", payload: map[string]any{"ticker": ""}, field: "ticker", want: `failed rule "required"`},
		{name: "недопустимые символы", payload: map[string]any{"ticker": "SP Y!"}, field: "ticker", want: `failed rule "ticker"`},
		{name: "выход за диапазон", payload: map[string]any{"ticker": "SPY", "limit": 1000}, field: "limit", want: `failed rule "lte" (100)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(testSchema, tt.payload)
			fields := fieldErrors(t, err)
			assert.Equal(t, tt.want, fields[tt.field])
		})
	}
}

func TestValidate_DoesNotMutatePayload(t *testing.T) {
	payload := map[string]any{"ticker": "SPY", "includeName": "1"}
	_, err := Validate(testSchema, payload)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ticker": "SPY", "includeName": "1"}, payload)
}

func TestValidate_NilMeansAbsent(t *testing.T) {
	out, err := Validate(testSchema, map[string]any{"ticker": "SPY", "includeName": nil})
	require.NoError(t, err)
	assert.Equal(t, false, out["includeName"])
}
