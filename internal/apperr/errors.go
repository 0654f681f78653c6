// Package apperr описывает ошибки клиентского ядра: какого они рода и что показать пользователю.
package apperr

import (
	"errors"
	"fmt"
)

// Виды ошибок. Проверяются через errors.Is.
var (
	ErrAuth         = errors.New("authentication failed")
	ErrValidation   = errors.New("validation failed")
	ErrInvalidState = errors.New("invalid order state")
	ErrTransport    = errors.New("transport failure")
	ErrProtocol     = errors.New("protocol error")
)

// Error — ошибка одного из видов выше с контекстом операции и сообщением сервера.
type Error struct {
	Kind    error  // один из Err*
	Op      string // операция, например "apiclient.PayOrder"
	Code    int    // код из конверта ответа, 0 если ответа не было
	Message string // сообщение сервера или клиентской проверки
	Err     error  // исходная причина
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Op == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == e.Kind }

// Validation создаёт ошибку клиентской проверки, сделанной до любого сетевого вызова.
func Validation(op, message string) error {
	return &Error{Kind: ErrValidation, Op: op, Message: message}
}

// InvalidState — сервер отклонил действие из-за статуса заказа.
func InvalidState(op string, code int, message string) error {
	return &Error{Kind: ErrInvalidState, Op: op, Code: code, Message: message}
}

// Auth — неверные учётные данные или истёкший токен.
func Auth(op string, code int, message string) error {
	return &Error{Kind: ErrAuth, Op: op, Code: code, Message: message}
}

// Protocol — код ответа != 200 либо ответ не соответствует контракту.
func Protocol(op string, code int, message string) error {
	return &Error{Kind: ErrProtocol, Op: op, Code: code, Message: message}
}

// Transport — запрос не дошёл до сервера или ответ не был получен.
func Transport(op string, err error) error {
	return &Error{Kind: ErrTransport, Op: op, Err: err}
}

var fallback = map[error]string{
	ErrAuth:         "login required, please sign in again",
	ErrValidation:   "please check the entered data",
	ErrInvalidState: "the order status has changed, refresh the list",
	ErrTransport:    "network error, please check the connection",
	ErrProtocol:     "the server returned an unexpected response",
}

// UserMessage возвращает текст для уведомления: сообщение сервера, если оно есть, иначе общий текст.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Kind != ErrTransport && appErr.Message != "" {
			return appErr.Message
		}
		if msg, ok := fallback[appErr.Kind]; ok {
			return msg
		}
	}
	return "operation failed"
}
