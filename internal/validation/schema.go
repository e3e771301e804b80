// Package validation: декларативные схемы полей запроса и общий валидатор.
// Схема не зависит от объекта запроса веб-фреймворка: на вход идёт map[string]any
// (query-параметры, path-параметры, JSON-тело).
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"

	"momentumRider/internal/domain"
)

// FieldType: объявленный тип поля.
type FieldType int

const (
	TypeString FieldType = iota
	TypeBool
	TypeInt
	TypeFloat
)

func (t FieldType) String() string {
	switch t {
	case TypeBool:
		return "boolean"
	case TypeInt:
		return "integer"
	case TypeFloat:
		return "number"
	default:
		return "string"
	}
}

// Field описывает одно поле: тип, необязательность, значение по умолчанию и правила validator.
// Default применяется только к отсутствующему полю; поле с Default считается необязательным.
type Field struct {
	Name     string
	Type     FieldType
	Optional bool
	Default  any
	Rules    string
}

// Schema: набор полей. Поля вне схемы отклоняются.
type Schema struct {
	Name   string
	Fields []Field
}

var tickerRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.\-^=]{0,14}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("ticker", func(fl validator.FieldLevel) bool {
		return tickerRe.MatchString(fl.Field().String())
	})
	return v
}

// Validate проверяет payload по схеме и возвращает нормализованную копию: значения приведены
// к объявленным типам, отсутствующим полям проставлены значения по умолчанию.
// Сам payload не меняется. Ошибка всегда *domain.Error вида ValidationError с ошибками по полям.
func Validate(schema Schema, payload map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(schema.Fields))
	fieldErrs := make(map[string]string)

	known := make(map[string]struct{}, len(schema.Fields))
	for _, f := range schema.Fields {
		known[f.Name] = struct{}{}
	}
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := known[k]; !ok {
			fieldErrs[k] = "unknown field"
		}
	}

	for _, f := range schema.Fields {
		raw, present := payload[f.Name]
		if !present || raw == nil {
			switch {
			case f.Default != nil:
				out[f.Name] = f.Default
			case !f.Optional:
				fieldErrs[f.Name] = "is required"
			}
			continue
		}

		v, err := coerce(f.Type, raw)
		if err != nil {
			fieldErrs[f.Name] = err.Error()
			continue
		}
		if f.Rules != "" {
			if err := validate.Var(v, f.Rules); err != nil {
				fieldErrs[f.Name] = ruleMessage(err)
				continue
			}
		}
		out[f.Name] = v
	}

	if len(fieldErrs) > 0 {
		return nil, domain.NewValidationError(fieldErrs)
	}
	return out, nil
}

func coerce(t FieldType, raw any) (any, error) {
	mismatch := fmt.Errorf("must be %s", article(t))
	switch t {
	case TypeString:
		if s, ok := raw.(string); ok {
			return s, nil
		}
	case TypeBool:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			if b, err := strconv.ParseBool(v); err == nil {
				return b, nil
			}
		}
	case TypeInt:
		switch v := raw.(type) {
		case int:
			return v, nil
		case float64:
			if v == math.Trunc(v) {
				return int(v), nil
			}
		case json.Number:
			if n, err := v.Int64(); err == nil {
				return int(n), nil
			}
		case string:
			if n, err := strconv.Atoi(v); err == nil {
				return n, nil
			}
		}
	case TypeFloat:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f, nil
			}
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f, nil
			}
		}
	}
	return nil, mismatch
}

func article(t FieldType) string {
	if t == TypeInt {
		return "an " + t.String()
	}
	return "a " + t.String()
}

func ruleMessage(err error) string {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Param() != "" {
			return fmt.Sprintf("failed rule %q (%s)", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed rule %q", fe.Tag())
	}
	return err.Error()
}

// String достаёт строковое поле из нормализованного результата.
func String(values map[string]any, name string) string {
	s, _ := values[name].(string)
	return s
}

// Bool достаёт булево поле из нормализованного результата.
func Bool(values map[string]any, name string) bool {
	b, _ := values[name].(bool)
	return b
}
