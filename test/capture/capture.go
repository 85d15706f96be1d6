// Package capture collects the output written to os.Stdout or
// os.Stderr while a function runs.
package capture

import (
	"io"
	"os"
	"strings"
)

// Capture replaces *fh by a pipe while f runs and returns everything
// written to it.
func Capture(fh **os.File, f func()) string {
	r, w, err := os.Pipe()
	if err != nil {
		panic(err)
	}
	done := make(chan string)
	go func() {
		var b strings.Builder
		io.Copy(&b, r)
		r.Close()
		done <- b.String()
	}()
	orig := *fh
	*fh = w
	defer func() { *fh = orig }()
	f()
	w.Close()
	return <-done
}

// CatchPanic returns the result of f or exit status 1 if f panics.
func CatchPanic(f func() int) (status int) {
	defer func() {
		if e := recover(); e != nil {
			status = 1
		}
	}()
	return f()
}
