package kvring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRing(t *testing.T) {
	t.Run("should fail on empty membership", func(t *testing.T) {
		// Arrange & Act
		sut, err := NewRing(nil, 64)

		// Assert
		assert.Nil(t, sut)
		assert.ErrorIs(t, err, ErrEmptyMembership)
	})

	t.Run("should build ring with vnodeCount * members positions", func(t *testing.T) {
		// Arrange
		members := []string{"a:1", "b:1", "c:1"}

		// Act
		sut, err := NewRing(members, 64)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, sut)
		assert.Len(t, sut.vnodes, 64*3)
		assert.ElementsMatch(t, members, sut.Members())
	})

	t.Run("should build byte-identical rings from the same membership list", func(t *testing.T) {
		// Arrange
		members := []string{"node-a:50051", "node-b:50051", "node-c:50051"}

		// Act
		ring1, err1 := NewRing(members, 64)
		ring2, err2 := NewRing(members, 64)

		// Assert
		require.NoError(t, err1)
		require.NoError(t, err2)
		require.Equal(t, ring1.vnodes, ring2.vnodes)
	})
}

func TestRingSuccessors(t *testing.T) {
	members := []string{"node-a:50051", "node-b:50051", "node-c:50051"}

	t.Run("owner is always one of the members", func(t *testing.T) {
		// Arrange
		sut, err := NewRing(members, 64)
		require.NoError(t, err)

		// Act & Assert
		for _, key := range []string{"alpha", "beta", "gamma", "durable", "legacy-only"} {
			owner := sut.Owner(key)
			assert.Contains(t, members, owner)
		}
	})

	t.Run("successors returns distinct nodes", func(t *testing.T) {
		// Arrange
		sut, err := NewRing(members, 64)
		require.NoError(t, err)

		// Act
		succ := sut.Successors("alpha", 3)

		// Assert
		assert.Len(t, succ, 3)
		seen := make(map[string]bool)
		for _, s := range succ {
			assert.False(t, seen[s], "successor list should have no duplicates")
			seen[s] = true
		}
	})

	t.Run("owner is the first successor", func(t *testing.T) {
		// Arrange
		sut, err := NewRing(members, 64)
		require.NoError(t, err)

		// Act
		succ := sut.Successors("alpha", 3)

		// Assert
		assert.Equal(t, sut.Owner("alpha"), succ[0])
	})

	t.Run("count greater than member count returns all distinct members", func(t *testing.T) {
		// Arrange
		sut, err := NewRing(members, 64)
		require.NoError(t, err)

		// Act
		succ := sut.Successors("alpha", 10)

		// Assert
		assert.Len(t, succ, len(members))
		assert.ElementsMatch(t, members, succ)
	})

	t.Run("is deterministic across repeated calls", func(t *testing.T) {
		// Arrange
		sut, err := NewRing(members, 64)
		require.NoError(t, err)

		// Act & Assert
		first := sut.Successors("alpha", 3)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, sut.Successors("alpha", 3))
		}
	})

	t.Run("is identical across two independently built rings", func(t *testing.T) {
		// Arrange
		ring1, err1 := NewRing(members, 64)
		ring2, err2 := NewRing(members, 64)
		require.NoError(t, err1)
		require.NoError(t, err2)

		// Act & Assert — spec.md §8 property 1
		for _, key := range []string{"alpha", "beta", "gamma", "omega", "zeta"} {
			assert.Equal(t, ring1.Successors(key, 3), ring2.Successors(key, 3))
		}
	})

	t.Run("single member ring returns that member for any count", func(t *testing.T) {
		// Arrange
		sut, err := NewRing([]string{"solo:1"}, 64)
		require.NoError(t, err)

		// Act
		succ := sut.Successors("anything", 3)

		// Assert
		assert.Equal(t, []string{"solo:1"}, succ)
	})

	t.Run("count of zero returns nil", func(t *testing.T) {
		// Arrange
		sut, err := NewRing(members, 64)
		require.NoError(t, err)

		// Act & Assert
		assert.Nil(t, sut.Successors("alpha", 0))
	})
}

func TestRingString(t *testing.T) {
	// Arrange
	sut, err := NewRing([]string{"node-a:1", "node-b:1"}, 8)
	require.NoError(t, err)

	// Act
	output := sut.String()

	// Assert
	assert.Contains(t, output, "node-a:1")
	assert.Contains(t, output, "node-b:1")
}
