package domain

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Kind: тип операционной ошибки. По нему граница (HTTP) выбирает статус и тело ответа.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindRateLimited
	KindCacheTier
)

// Стабильные машиночитаемые коды. Клиенты ветвятся по коду, а не по тексту.
const (
	CodeValidation        = "ERR_VALIDATION"
	CodeNotFound          = "ERR_NOT_FOUND"
	CodeUnauthorized      = "ERR_UNAUTHORIZED"
	CodeForbidden         = "ERR_FORBIDDEN"
	CodeRateLimitExceeded = "ERR_RATE_LIMIT_EXCEEDED"
	CodeCacheTier         = "ERR_CACHE_TIER"
	CodeInternal          = "ERR_INTERNAL"
)

var kindMeta = map[Kind]struct {
	code   string
	status int
	name   string
}{
	KindInternal:     {CodeInternal, http.StatusInternalServerError, "InternalServerError"},
	KindValidation:   {CodeValidation, http.StatusBadRequest, "ValidationError"},
	KindNotFound:     {CodeNotFound, http.StatusNotFound, "NotFoundError"},
	KindUnauthorized: {CodeUnauthorized, http.StatusUnauthorized, "UnauthorizedError"},
	KindForbidden:    {CodeForbidden, http.StatusForbidden, "ForbiddenError"},
	KindRateLimited:  {CodeRateLimitExceeded, http.StatusTooManyRequests, "RateLimitExceededError"},
	KindCacheTier:    {CodeCacheTier, http.StatusInternalServerError, "CacheTierError"},
}

func (k Kind) String() string {
	if m, ok := kindMeta[k]; ok {
		return m.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error: операционная ошибка. Создаётся один раз в месте сбоя и дальше не меняется.
type Error struct {
	Kind       Kind
	Code       string
	Status     int
	Message    string
	Fields     map[string]string
	RetryAfter time.Duration
	Err        error
}

func (e *Error) Error() string {
	msg := e.Code + ": " + e.Message
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + " " + e.Fields[k]
		}
		msg += " (" + strings.Join(parts, "; ") + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, message string, cause error) *Error {
	m := kindMeta[kind]
	return &Error{Kind: kind, Code: m.code, Status: m.status, Message: message, Err: cause}
}

// NewValidationError: ошибки по полям запроса (поле -> сообщение).
func NewValidationError(fields map[string]string) *Error {
	e := newError(KindValidation, "request validation failed", nil)
	e.Fields = fields
	return e
}

// NewNotFoundError: неизвестный тикер или ресурс.
func NewNotFoundError(resource, id string) *Error {
	return newError(KindNotFound, fmt.Sprintf("%s %q not found", resource, id), nil)
}

// NewUnauthorizedError и NewForbiddenError не создаются ядром; они приходят от внешнего auth-слоя.
func NewUnauthorizedError(message string) *Error {
	return newError(KindUnauthorized, message, nil)
}

func NewForbiddenError(message string) *Error {
	return newError(KindForbidden, message, nil)
}

// NewRateLimitExceededError: квота исчерпана, retryAfter до конца окна.
func NewRateLimitExceededError(retryAfter time.Duration) *Error {
	e := newError(KindRateLimited, "rate limit exceeded", nil)
	e.RetryAfter = retryAfter
	return e
}

// NewCacheTierError: сбой уровня кэша. Не фатален, обрабатывается внутри сервиса кэша.
func NewCacheTierError(tier CacheTier, op string, cause error) *Error {
	return newError(KindCacheTier, fmt.Sprintf("%s cache %s failed", tier, op), cause)
}

// NewInternalError: последняя инстанция.
func NewInternalError(message string, cause error) *Error {
	return newError(KindInternal, message, cause)
}

// AsError достаёт *Error из цепочки. Любая другая ошибка на границе считается внутренней.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf возвращает Kind ошибки; для nil и посторонних ошибок KindInternal.
func KindOf(err error) Kind {
	if e, ok := AsError(err); ok {
		return e.Kind
	}
	return KindInternal
}

// RetryAfterSeconds округляет вверх до целых секунд, минимум 1.
func (e *Error) RetryAfterSeconds() int {
	secs := int((e.RetryAfter + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}
