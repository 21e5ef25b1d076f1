package advanced

import "github.com/pkg/errors"

// Threading errors through the tree builder and every accessor would add a lot
// of noise for conditions that are programming errors. Instead, we panic with
// a MeshError, and the public API recovers to convert it into an error.

type MeshError struct {
	error
}

func (e MeshError) Cause() error {
	return e.error
}

// Panic with a MeshError.
func fatalf(format string, args ...interface{}) {
	panic(MeshError{errors.Errorf(format, args...)})
}

// Use in a deferred function with the result of recover(). A MeshError is
// returned as an error; any other panic, runtime errors included, is
// re-raised.
func HandleMeshPanicRecover(r interface{}) error {
	if r != nil {
		if meshError, ok := r.(MeshError); ok {
			return meshError
		}
		panic(r)
	}
	return nil
}
