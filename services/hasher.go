package services

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/crypto/bcrypt"
)

// ErrHasherClosed is returned for work submitted after Close.
var ErrHasherClosed = errors.New("hasher is closed")

// hashResult holds the outcome of a hashing job.
type hashResult struct {
	hash string
	err  error
}

// hashJob is either a hash request or, when compare is set, a check of
// password against hash.
type hashJob struct {
	password string
	hash     string
	compare  bool
	result   chan<- hashResult
}

// Hasher runs bcrypt on a fixed pool of workers so slow hashing cannot
// occupy more goroutines than there are CPUs.
type Hasher struct {
	jobs chan hashJob
	done chan struct{}
	cost int
}

// NewHasher starts numWorkers workers; numWorkers <= 0 means one per CPU.
func NewHasher(numWorkers int, cost int) *Hasher {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	h := &Hasher{
		jobs: make(chan hashJob),
		done: make(chan struct{}),
		cost: cost,
	}

	for i := 0; i < numWorkers; i++ {
		go h.worker()
	}

	return h
}

func (h *Hasher) worker() {
	for {
		select {
		case <-h.done:
			return
		case job := <-h.jobs:
			job.result <- h.run(job)
		}
	}
}

func (h *Hasher) run(job hashJob) hashResult {
	if job.compare {
		return hashResult{err: bcrypt.CompareHashAndPassword([]byte(job.hash), []byte(job.password))}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(job.password), h.cost)
	return hashResult{hash: string(hash), err: err}
}

// submit hands job to the pool and waits for its result. The result channel is
// buffered so a worker never blocks on a caller that has gone away.
func (h *Hasher) submit(ctx context.Context, job hashJob) (hashResult, error) {
	if err := ctx.Err(); err != nil {
		return hashResult{}, err
	}
	select {
	case <-h.done:
		return hashResult{}, ErrHasherClosed
	default:
	}

	result := make(chan hashResult, 1)
	job.result = result

	select {
	case h.jobs <- job:
	case <-h.done:
		return hashResult{}, ErrHasherClosed
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	}

	select {
	case r := <-result:
		return r, nil
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	}
}

// GenerateHash returns the bcrypt hash of password.
func (h *Hasher) GenerateHash(ctx context.Context, password string) (string, error) {
	r, err := h.submit(ctx, hashJob{password: password})
	if err != nil {
		return "", err
	}
	return r.hash, r.err
}

// Compare returns nil when password matches hash, and
// bcrypt.ErrMismatchedHashAndPassword when it does not.
func (h *Hasher) Compare(ctx context.Context, hash, password string) error {
	r, err := h.submit(ctx, hashJob{password: password, hash: hash, compare: true})
	if err != nil {
		return err
	}
	return r.err
}

// Close stops the workers. It must be called at most once.
func (h *Hasher) Close() {
	close(h.done)
}
