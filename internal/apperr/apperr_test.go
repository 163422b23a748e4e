package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs_MatchesWrappedAndDetailed(t *testing.T) {
	err := fmt.Errorf("book slot: %w", ErrSlotUnavailable.WithMessage("slot 42"))
	assert.True(t, errors.Is(err, ErrSlotUnavailable))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "slot_unavailable", CodeOf(err))
}

func TestKindOf_Infrastructure(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("connection refused")))
	assert.Equal(t, "", CodeOf(nil))
}

func TestError_String(t *testing.T) {
	assert.Equal(t, "forbidden", ErrForbidden.Error())
	assert.Equal(t, "invalid_time: 25:00", ErrInvalidTime.WithMessage("25:00").Error())
}
