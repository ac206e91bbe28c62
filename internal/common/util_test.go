package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestUnknownChallengeError(t *testing.T) {
	err := &UnknownChallengeError{IDs: []int64{4, 9}}

	assert.Equal(t, "unknown challenge: 4, 9", err.Error())
	assert.True(t, errors.Is(err, ErrUnknownChallenge))
	assert.False(t, errors.Is(err, ErrNoChallenges))

	wrapped := fmt.Errorf("submit survey: %w", err)
	assert.True(t, errors.Is(wrapped, ErrUnknownChallenge))

	var target *UnknownChallengeError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, []int64{4, 9}, target.IDs)
}
