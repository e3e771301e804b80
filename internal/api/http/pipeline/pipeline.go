// Package pipeline: обработка запроса как цепочка явных шагов. Каждый шаг либо возвращает
// терминальную ошибку, либо передаёт управление следующему. Порядок задаёт контроллер:
// валидация, затем допуск по лимитам, затем бизнес-логика.
package pipeline

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"momentumRider/internal/domain"
	"momentumRider/internal/ratelimit"
	"momentumRider/internal/validation"
)

// Stage: шаг обработки. Ошибка прерывает цепочку.
type Stage func(ctx *gin.Context) error

// Run выполняет шаги по порядку до первой ошибки.
func Run(ctx *gin.Context, stages ...Stage) error {
	for _, s := range stages {
		if err := s(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Collector собирает сырые поля запроса для валидации.
type Collector func(ctx *gin.Context) (map[string]any, error)

// Validate проверяет поля по схеме и кладёт нормализованный результат в dst.
func Validate(schema validation.Schema, collect Collector, dst *map[string]any) Stage {
	return func(ctx *gin.Context) error {
		payload, err := collect(ctx)
		if err != nil {
			return err
		}
		values, err := validation.Validate(schema, payload)
		if err != nil {
			return err
		}
		*dst = values
		return nil
	}
}

// Admit пропускает запрос, если у клиента осталась квота для класса эндпоинта.
// Клиент определяется по IP.
func Admit(limiter *ratelimit.Limiter, class ratelimit.Class) Stage {
	return func(ctx *gin.Context) error {
		return limiter.Check(ctx.ClientIP(), class)
	}
}

// Query: поля из path-параметров и query-строки. Из повторяющихся параметров берётся первый.
func Query(ctx *gin.Context) (map[string]any, error) {
	payload := make(map[string]any)
	for k, vs := range ctx.Request.URL.Query() {
		if len(vs) > 0 {
			payload[k] = vs[0]
		}
	}
	for _, p := range ctx.Params {
		payload[p.Key] = p.Value
	}
	return payload, nil
}

// QueryAndBody: как Query, плюс поля JSON-тела поверх них. Пустое тело допустимо.
func QueryAndBody(ctx *gin.Context) (map[string]any, error) {
	payload, _ := Query(ctx)

	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, 1<<20))
	if err != nil {
		return nil, domain.NewValidationError(map[string]string{"body": "cannot be read"})
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return payload, nil
	}

	var fields map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return nil, domain.NewValidationError(map[string]string{"body": "must be a JSON object"})
	}
	for k, v := range fields {
		payload[k] = v
	}
	return payload, nil
}
