package server

import "time"

const (
	readTimeout = 10 * time.Second
	// Cold bootstrap reads block on the upstream fetch, which may run for
	// up to the client timeout. Write timeout has to cover that.
	writeTimeout = 3 * time.Minute
	idleTimeout  = 60 * time.Second
)

// Overridable in tests.
var shutdownTimeout = 10 * time.Second
