package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("direct error", func(t *testing.T) {
		err := New(CodeNotFound, "nominee not found")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeConflict))
	})

	t.Run("code found deeper in the chain", func(t *testing.T) {
		inner := New(CodeConflict, "already processed")
		outer := Wrap(inner, CodeInternal, "consume failed")
		assert.True(t, HasCode(outer, CodeInternal))
		assert.True(t, HasCode(outer, CodeConflict))
	})

	t.Run("through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("store: %w", New(CodeCrypto, "decrypt failed"))
		assert.True(t, Is(err, CodeCrypto))
	})

	t.Run("plain error", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.False(t, HasCode(nil, CodeInternal))
	})
}

func TestReasonMatching(t *testing.T) {
	errNoEnrollment := New(CodeNotFound, "no active face enrollment")

	wrapped := Wrap(errNoEnrollment, CodeNotFound, "verify face")
	require.ErrorIs(t, wrapped, errNoEnrollment)
	require.ErrorIs(t, New(CodeNotFound, "no active face enrollment"), errNoEnrollment)
	assert.NotErrorIs(t, New(CodeNotFound, "principal not found"), errNoEnrollment)
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "load: db down", Wrap(errors.New("db down"), CodeInternal, "load").Error())
	assert.Equal(t, "bad", New(CodeBadRequest, "bad").Error())
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:   http.StatusBadRequest,
		CodeNotFound:     http.StatusNotFound,
		CodeConflict:     http.StatusConflict,
		CodeCrypto:       http.StatusUnprocessableEntity,
		CodeTokenExpired: http.StatusGone,
		CodeDependency:   http.StatusServiceUnavailable,
		CodeInternal:     http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, HTTPStatus(code), string(code))
	}
	assert.Equal(t, CodeInternal, CodeOf(errors.New("x")))
	assert.Equal(t, CodeConflict, CodeOf(fmt.Errorf("x: %w", New(CodeConflict, "dup"))))
}
