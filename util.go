package comp

import (
	"reflect"

	"github.com/mohae/deepcopy"
)

// Identity returns x unchanged.
// For reference kinds (pointers, slices, maps) the result shares
// storage with the input, so mutation through the result is visible
// at the original location.
func Identity(x any) any {
	return x
}

// IdentityValue returns a structurally independent copy of x.
// Unlike Identity, the result never aliases the caller's storage,
// even for reference kinds.
func IdentityValue(x any) any {
	return deepcopy.Copy(x)
}

// Noop accepts any arguments and does nothing.
func Noop(...any) {}

// Constant is a callable that yields one captured value on every
// invocation, regardless of its arguments.  The captured value is
// reachable three ways: shared via Call or Value, mutable via Ref or
// Set, or moved out via Take.
type Constant struct {
	value reflect.Value
}

// Constantly captures a decayed copy of value and returns the
// callable that always yields it.  Captured pointers, slices and
// maps still share their referents with the caller; use
// IdentityValue first to sever that.
func Constantly(value any) *Constant {
	if value == nil {
		panic("value cannot be nil")
	}
	v := reflect.New(reflect.TypeOf(value)).Elem()
	v.Set(reflect.ValueOf(value))
	return &Constant{v}
}

// Call returns the captured value, ignoring all arguments.
// This is the shape used when a *Constant appears in a composition.
func (c *Constant) Call(...any) any {
	return c.value.Interface()
}

// Value returns the captured value.
func (c *Constant) Value() any {
	return c.value.Interface()
}

// Ref returns a pointer to the captured storage, allowing the
// constant to be mutated in place.
func (c *Constant) Ref() any {
	return c.value.Addr().Interface()
}

// Set replaces the captured value.
func (c *Constant) Set(value any) {
	c.value.Set(reflect.ValueOf(value))
}

// Take moves the captured value out, resetting the capture to its
// zero value.
func (c *Constant) Take() any {
	v := c.value.Interface()
	c.value.Set(reflect.Zero(c.value.Type()))
	return v
}
