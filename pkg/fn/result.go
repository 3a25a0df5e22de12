// Package fn provides the Result and Stage combinators the ingest and
// scraper pipelines are built from. A Result carries either a value or an
// error, so a failing record drops out of its pipeline without aborting
// the batch it arrived in.
package fn

import "fmt"

// Result holds either a value of type T or an error, never both.
type Result[T any] struct {
	val T
	err error
	ok  bool
}

// Ok wraps a value.
func Ok[T any](v T) Result[T] {
	return Result[T]{val: v, ok: true}
}

// Err wraps an error.
func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Errf wraps a formatted error. The format string accepts %w.
func Errf[T any](format string, args ...any) Result[T] {
	return Result[T]{err: fmt.Errorf(format, args...)}
}

// IsOk reports whether the result holds a value.
func (r Result[T]) IsOk() bool { return r.ok }

// IsErr reports whether the result holds an error.
func (r Result[T]) IsErr() bool { return !r.ok }

// Unwrap returns the value and error as an ordinary Go pair.
func (r Result[T]) Unwrap() (T, error) { return r.val, r.err }

// Must returns the value or panics on error.
func (r Result[T]) Must() T {
	if !r.ok {
		panic(r.err)
	}
	return r.val
}

// UnwrapOr returns the value or a fallback on error.
func (r Result[T]) UnwrapOr(fallback T) T {
	if !r.ok {
		return fallback
	}
	return r.val
}

// Map applies f to the value; an error result passes through untouched.
func (r Result[T]) Map(f func(T) T) Result[T] {
	if !r.ok {
		return r
	}
	return Ok(f(r.val))
}

// AndThen chains a fallible function; an error result short-circuits it.
func (r Result[T]) AndThen(f func(T) Result[T]) Result[T] {
	if !r.ok {
		return r
	}
	return f(r.val)
}

// MapResult applies f across a type change, T to U.
func MapResult[T, U any](r Result[T], f func(T) U) Result[U] {
	if !r.ok {
		return Err[U](r.err)
	}
	return Ok(f(r.val))
}

// FromPair lifts an ordinary (value, error) return into a Result.
func FromPair[T any](v T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(v)
}

// Collect flattens a slice of results into one: all values in order, or
// the first error encountered.
func Collect[T any](results []Result[T]) Result[[]T] {
	out := make([]T, len(results))
	for i, r := range results {
		if !r.ok {
			return Err[[]T](r.err)
		}
		out[i] = r.val
	}
	return Ok(out)
}
