package logs

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-logr/logr"
	"github.com/imdario/mergo"
	"github.com/miruken-go/comp"
	"github.com/miruken-go/comp/internal"
)

// Options configure a traced callable.
type Options struct {
	// Name identifies the callable in log output.
	// Defaults to the callable's type.
	Name string

	// Verbosity gates the trace output (logr V level).
	Verbosity int
}

const durationFormat = "15:04:05.000000" // microseconds

// Traced wraps a callable in a stage that logs each invocation and
// its duration.  The wrapper has the exact signature of the wrapped
// callable, so it can stand in for it at any position of a
// composition and all of its results are returned untouched.  A
// trailing error result is logged before being handed back.
func Traced(logger logr.Logger, fun any, opts ...Options) (any, error) {
	val, err := comp.ResolveCallable(fun)
	if err != nil {
		return nil, err
	}
	var options Options
	for _, o := range opts {
		if err := mergo.Merge(&options, o); err != nil {
			return nil, err
		}
	}
	if options.Name == "" {
		options.Name = fmt.Sprintf("%T", fun)
	}
	log := logger.WithName(options.Name).V(options.Verbosity)
	typ := val.Type()
	call := val.Call
	if typ.IsVariadic() {
		call = val.CallSlice
	}
	wrapper := reflect.MakeFunc(typ,
		func(in []reflect.Value) []reflect.Value {
			if !log.Enabled() {
				return call(in)
			}
			log.Info("invoking", "args", len(in))
			start := time.Now()
			out := call(in)
			if e := trailingError(typ, out); e != nil {
				log.Error(e, "failed", "duration", sinceFormatted(start))
			} else {
				log.Info("completed", "duration", sinceFormatted(start))
			}
			return out
		})
	return wrapper.Interface(), nil
}

func trailingError(typ reflect.Type, out []reflect.Value) error {
	if n := typ.NumOut(); n > 0 && typ.Out(n-1) == internal.ErrorType {
		if e, ok := out[n-1].Interface().(error); ok {
			return e
		}
	}
	return nil
}

func sinceFormatted(start time.Time) string {
	return time.Time{}.Add(time.Since(start)).Format(durationFormat)
}
