// Package clock provides a tiny time abstraction.
//
// Production code depends on the Clocker interface instead of calling
// time.Now() directly, so tests can pin enrollment timestamps with Fixed.
package clock
