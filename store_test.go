package kvring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore(t *testing.T) {
	t.Run("get on empty store misses", func(t *testing.T) {
		// Arrange
		sut := newStore()

		// Act
		_, ok := sut.Get("alpha")

		// Assert
		assert.False(t, ok)
	})

	t.Run("set then get returns the value", func(t *testing.T) {
		// Arrange
		sut := newStore()

		// Act
		sut.Set("alpha", []byte("1"))
		v, ok := sut.Get("alpha")

		// Assert
		assert.True(t, ok)
		assert.Equal(t, []byte("1"), v)
	})

	t.Run("set overwrites a previous value", func(t *testing.T) {
		// Arrange
		sut := newStore()
		sut.Set("alpha", []byte("1"))

		// Act
		sut.Set("alpha", []byte("2"))
		v, _ := sut.Get("alpha")

		// Assert
		assert.Equal(t, []byte("2"), v)
	})

	t.Run("delete removes the key", func(t *testing.T) {
		// Arrange
		sut := newStore()
		sut.Set("alpha", []byte("1"))

		// Act
		sut.Delete("alpha")
		_, ok := sut.Get("alpha")

		// Assert
		assert.False(t, ok)
	})

	t.Run("delete on absent key is a no-op", func(t *testing.T) {
		// Arrange
		sut := newStore()

		// Act & Assert
		assert.NotPanics(t, func() { sut.Delete("missing") })
	})

	t.Run("len reports the number of keys held", func(t *testing.T) {
		// Arrange
		sut := newStore()
		sut.Set("a", []byte("1"))
		sut.Set("b", []byte("2"))

		// Act & Assert
		assert.Equal(t, 2, sut.Len())
	})

	t.Run("is safe under concurrent access", func(t *testing.T) {
		// Arrange
		sut := newStore()
		done := make(chan struct{})

		// Act
		for i := 0; i < 50; i++ {
			go func(i int) {
				sut.Set("key", []byte{byte(i)})
				sut.Get("key")
				done <- struct{}{}
			}(i)
		}
		for i := 0; i < 50; i++ {
			<-done
		}

		// Assert
		_, ok := sut.Get("key")
		assert.True(t, ok)
	})
}
