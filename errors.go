package loginject

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

var (
	// ErrNoAdapter matches every *NoAdapterError.
	ErrNoAdapter = errors.New("loginject: no adapter")
	// ErrInvocation matches every *InvocationError.
	ErrInvocation = errors.New("loginject: logger creation failed")
	// ErrConfiguration matches every *ConfigurationError.
	ErrConfiguration = errors.New("loginject: invalid configuration")
	// ErrNoInjectionContext is returned by adapters that cannot tell which
	// type a logger is being injected into.
	ErrNoInjectionContext = errors.New("loginject: injection context not found")
)

// NoAdapterError reports that no registered adapter supports a binding type.
type NoAdapterError struct {
	BindingType reflect.Type
	LoggerType  reflect.Type
}

func (e *NoAdapterError) Error() string {
	return fmt.Sprintf("loginject: no implementation present that can return a %s (logger type %s)",
		typeString(e.BindingType), typeString(e.LoggerType))
}

func (e *NoAdapterError) Is(target error) bool { return target == ErrNoAdapter }

// InvocationError wraps a failure of a descriptor or of the factory while a
// logger was created for Target.
type InvocationError struct {
	Target reflect.Type
	Stage  string // "parameter N" or "factory"
	Cause  error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("loginject: creating logger for %s: %s: %v", typeString(e.Target), e.Stage, e.Cause)
}

func (e *InvocationError) Unwrap() error { return e.Cause }

func (e *InvocationError) Is(target error) bool { return target == ErrInvocation }

// ConfigurationError reports a Spec that cannot be constructed.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "loginject: invalid configuration: " + e.Reason
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

func configErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

const stageFactory = "factory"

func stageParameter(i int) string { return "parameter " + strconv.Itoa(i) }

// invoke runs fn and turns a returned error or a panic into *InvocationError.
func invoke(target reflect.Type, stage string, fn func() (any, error)) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			v = nil
			err = &InvocationError{Target: target, Stage: stage, Cause: panicCause(r)}
		}
	}()
	v, err = fn()
	if err != nil {
		return nil, &InvocationError{Target: target, Stage: stage, Cause: err}
	}
	return v, nil
}

func panicCause(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}
