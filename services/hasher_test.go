package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_GenerateAndCompare(t *testing.T) {
	h := NewHasher(2, bcrypt.MinCost)
	t.Cleanup(h.Close)
	ctx := context.Background()

	hash, err := h.GenerateHash(ctx, "1234")
	require.NoError(t, err)
	assert.NotEqual(t, "1234", hash)

	assert.NoError(t, h.Compare(ctx, hash, "1234"))
	assert.ErrorIs(t, h.Compare(ctx, hash, "4321"), bcrypt.ErrMismatchedHashAndPassword)
}

func TestHasher_Concurrent(t *testing.T) {
	h := NewHasher(0, bcrypt.MinCost)
	t.Cleanup(h.Close)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hash, err := h.GenerateHash(context.Background(), "password")
			if err == nil {
				err = h.Compare(context.Background(), hash, "password")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestHasher_CanceledContext(t *testing.T) {
	h := NewHasher(1, bcrypt.MinCost)
	t.Cleanup(h.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.GenerateHash(ctx, "password")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHasher_Closed(t *testing.T) {
	h := NewHasher(1, bcrypt.MinCost)
	h.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := h.GenerateHash(ctx, "password")
	assert.ErrorIs(t, err, ErrHasherClosed)
}
