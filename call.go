package comp

import (
	"fmt"
	"reflect"

	"github.com/miruken-go/comp/internal/slices"
)

type (
	// CallerFunc invokes a bound callable with the supplied arguments.
	CallerFunc func(args ...any) []any

	// CallableError reports a value that does not support invocation.
	CallableError struct {
		Callable any
		Reason   error
	}
)

func (e *CallableError) Error() string {
	return fmt.Sprintf("invalid callable %T: %v", e.Callable, e.Reason)
}

func (e *CallableError) Unwrap() error { return e.Reason }

// MakeCaller binds a callable value to a uniform invoker.
// It accepts function values (including method expressions and bound
// method values), reflect.Value wrappers of functions, reflect.Method
// references (invoked with the receiver as the first argument), and
// callable objects exposing a Call method.
// The callable shape is resolved once, via ResolveCallable; the
// returned CallerFunc performs no shape dispatch of its own.
func MakeCaller(fun any) (CallerFunc, error) {
	c, err := makeCaller(fun)
	if err != nil {
		return nil, err
	}
	return c.invoke, nil
}

// ResolveCallable resolves a callable value to its invocable function
// value: function values (including method expressions and bound
// method values) and reflect.Value wrappers of them resolve to
// themselves, reflect.Method references resolve to Method.Func with
// the receiver as the first argument, and callable objects resolve to
// their bound Call method.
func ResolveCallable(fun any) (reflect.Value, error) {
	if fun == nil {
		panic("fun cannot be nil")
	}
	var val reflect.Value
	switch f := fun.(type) {
	case reflect.Method:
		val = f.Func
	case reflect.Value:
		val = f
	default:
		val = reflect.ValueOf(fun)
	}
	if !val.IsValid() {
		panic("fun cannot be nil")
	}
	if val.Kind() != reflect.Func {
		// functor shape
		if call := val.MethodByName(callMethod); call.IsValid() {
			val = call
		} else {
			return reflect.Value{}, &CallableError{fun, fmt.Errorf(
				"%v is not a function and has no %s method",
				val.Type(), callMethod)}
		}
	}
	if val.IsNil() {
		panic("fun cannot be nil")
	}
	return val, nil
}

// caller is a callable resolved to its invocable function value.
type caller struct {
	fun reflect.Value
	typ reflect.Type
}

const callMethod = "Call"

func makeCaller(fun any) (*caller, error) {
	val, err := ResolveCallable(fun)
	if err != nil {
		return nil, err
	}
	return &caller{fun: val, typ: val.Type()}, nil
}

// invoke calls the bound function with args.
// Nil arguments are passed as the zero value of the parameter type.
func (c *caller) invoke(args ...any) []any {
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			in[i] = reflect.Zero(c.argType(i))
		} else {
			in[i] = reflect.ValueOf(arg)
		}
	}
	return slices.Map[reflect.Value, any](c.fun.Call(in),
		func(v reflect.Value) any { return v.Interface() })
}

// argType returns the parameter type at position i,
// unrolling the final variadic parameter.
func (c *caller) argType(i int) reflect.Type {
	if last := c.typ.NumIn() - 1; c.typ.IsVariadic() && i >= last {
		return c.typ.In(last).Elem()
	}
	return c.typ.In(i)
}

// acceptsCount reports whether the callable can be invoked with
// exactly n arguments.
func (c *caller) acceptsCount(n int) bool {
	numIn := c.typ.NumIn()
	if c.typ.IsVariadic() {
		return n >= numIn-1
	}
	return n == numIn
}

// soleArgType returns the parameter type of a single-argument
// invocation, or nil if none is statically known.
func (c *caller) soleArgType() reflect.Type {
	if c.typ.NumIn() > 0 {
		return c.argType(0)
	}
	return nil
}
