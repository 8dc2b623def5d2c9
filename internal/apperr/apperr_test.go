package apperr

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindNotFound, http.StatusNotFound},
		{KindValidation, http.StatusBadRequest},
		{KindConflict, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.kind.Status())
		})
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := errors.Wrap(NotFound("Order not found"), "load order")

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, Is(err, KindNotFound))
	assert.Equal(t, "Order not found", Message(err))
}

func TestKindOfPlainError(t *testing.T) {
	err := errors.New("connection refused")

	assert.Equal(t, KindInternal, KindOf(err))
	assert.False(t, Is(nil, KindInternal))
	assert.Equal(t, "connection refused", Message(err))
}

func TestStackIncludesCaller(t *testing.T) {
	s := Stack(Conflict("User already exists"))

	assert.Contains(t, s, "conflict: User already exists")
	assert.Contains(t, s, "apperr_test.go")
}
