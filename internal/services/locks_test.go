package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordLocks(t *testing.T) {
	locks := newRecordLocks()

	var (
		wg      sync.WaitGroup
		counter int
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lockClaim("dist", "entry")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Zero(t, locks.size())
}

func TestRecordLocksIndependentKeys(t *testing.T) {
	locks := newRecordLocks()

	unlockA := locks.lock("a")
	// a different key must not block while "a" is held
	unlockB := locks.lock("b")
	assert.Equal(t, 2, locks.size())

	unlockB()
	unlockA()
	assert.Zero(t, locks.size())
}
