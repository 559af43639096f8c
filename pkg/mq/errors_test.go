package mq_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Behyna/saldo-service/pkg/mq"
	"github.com/stretchr/testify/assert"
)

func TestIsTemporary(t *testing.T) {
	base := errors.New("db down")

	assert.True(t, mq.IsTemporary(mq.Temporary(base)))
	assert.True(t, mq.IsTemporary(fmt.Errorf("wrapped: %w", mq.Temporary(base))))
	assert.False(t, mq.IsTemporary(base))
	assert.False(t, mq.IsTemporary(nil))
	assert.ErrorIs(t, mq.Temporary(base), base)
}
