package expiringmap

import "errors"

var (
	// ErrConfiguration is returned by New when the options describe an unusable map.
	ErrConfiguration = errors.New("invalid expiring map configuration")

	// ErrKeyNotFound is returned by Lookup and Delete when the key is absent.
	ErrKeyNotFound = errors.New("key not found in expiring map")

	// ErrLoadAborted is returned to the callers of GetOrLoad when the load function calls runtime.Goexit.
	ErrLoadAborted = errors.New("load aborted by runtime.Goexit")
)
