// Package result defines the uniform success/failure envelope returned by
// every business operation in the identity system. Operations signal expected
// failures through a Result rather than a Go error; errors are reserved for
// cancellation and programmer-level faults.
package result

import "reflect"

// Result carries either a payload (IsSuccess true) or an error message
// (IsSuccess false), never both. The JSON shape is shared verbatim between
// the identity service and the people gateway.
type Result[T any] struct {
	Data      T      `json:"data"`
	IsSuccess bool   `json:"isSuccess"`
	Error     string `json:"error,omitempty"`
}

// Success wraps data in a successful Result.
func Success[T any](data T) Result[T] {
	return Result[T]{Data: data, IsSuccess: true}
}

// Failure returns a failed Result carrying the given message.
func Failure[T any](msg string) Result[T] {
	return Result[T]{IsSuccess: false, Error: msg}
}

// Map transforms a successful Result's payload with f.
//
// A failed Result propagates unchanged. A successful Result whose payload is
// absent (nil pointer, nil slice, nil map or nil interface) becomes
// Failure("No data."): downstream layers derive HTTP status purely from
// IsSuccess, so success-with-nothing must be indistinguishable from failure.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if !r.IsSuccess {
		return Failure[U](r.Error)
	}
	if isAbsent(r.Data) {
		return Failure[U]("No data.")
	}
	return Success(f(r.Data))
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
