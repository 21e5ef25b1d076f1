package advanced

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs fn the way the public API runs the core.
func recovering(fn func()) (err error) {
	defer func() {
		err = HandleMeshPanicRecover(recover())
	}()
	fn()
	return nil
}

func TestHandleMeshPanicRecover(t *testing.T) {
	t.Run("mesh errors become errors", func(t *testing.T) {
		err := recovering(func() { fatalf("node %d is broken", 3) })
		require.Error(t, err)
		assert.EqualError(t, err, "node 3 is broken")
		assert.IsType(t, MeshError{}, err)
		assert.NotEqual(t, err, errors.Cause(err), "Cause unwraps to the inner error")
	})

	t.Run("other panics propagate", func(t *testing.T) {
		assert.PanicsWithValue(t, "not ours", func() {
			_ = recovering(func() { panic("not ours") })
		})
		assert.Panics(t, func() {
			_ = recovering(func() {
				var points []Point
				_ = points[3]
			})
		})
	})

	t.Run("no panic", func(t *testing.T) {
		assert.NoError(t, recovering(func() {}))
	})
}

func TestEmptyBuildIsMeshError(t *testing.T) {
	err := recovering(func() { BuildTree(nil) })
	assert.IsType(t, MeshError{}, err)
}
