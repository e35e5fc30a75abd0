package panicerr

// Recover calls f, converting any panic raised by it into a non-nil error
// return that names the panicking party and carries its stack trace.
//
// Unlike running f in a separate goroutine, f executes on the caller's
// goroutine, so anything f touches stays owned by the caller.
func Recover(name string, f func() error) (err error) {
	defer recoverPanicError(name, &err)
	return f()
}
