// Package clock provides a tiny time abstraction.
//
// Session and token expiry are pure wall-clock comparisons, so business code
// depends on the Clocker interface instead of calling time.Now() directly.
// Tests swap in a fixed clock to exercise expiry paths deterministically.
package clock
