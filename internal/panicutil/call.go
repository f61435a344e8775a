package panicutil

import (
	"github.com/sourcegraph/conc/panics"
)

// Call runs f and returns a panic raised by it as an error of type *panics.ErrRecovered.
// It returns nil if f returns normally.
//
// If f calls runtime.Goexit, Call invokes onGoexit (when non-nil) while the goroutine
// unwinds, and never returns.
func Call(f func(), onGoexit func()) (err error) {
	var returned bool
	defer func() {
		if !returned && onGoexit != nil {
			onGoexit()
		}
	}()

	var pc panics.Catcher
	pc.Try(f)
	returned = true
	return pc.Recovered().AsError()
}
