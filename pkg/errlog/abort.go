package errlog

type bailout struct{}

// HandleAbort calls f and returns its exit code. If f called Abort,
// exit code 1 is returned instead.
func HandleAbort(f func() int) (exitCode int) {
	defer func() {
		if e := recover(); e != nil {
			if _, ok := e.(bailout); !ok {
				panic(e) // Resume same panic if it's not a bailout.
			}
			exitCode = 1
		}
	}()
	return f()
}

// Abort logs an error and unwinds to the enclosing HandleAbort.
func Abort(format string, args ...any) {
	logger.Errorf(format, args...)
	panic(bailout{})
}
