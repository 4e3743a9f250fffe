package errors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorWrapper_Wrap(t *testing.T) {
	t.Parallel()

	w := NewWrapper("whatsapp", "text")

	assert.NoError(t, w.Wrap(nil, "post message"))
	assert.NoError(t, w.Wrapf(nil, "post %s", "message"))

	err := w.Wrapf(context.DeadlineExceeded, "post %s", "message")
	require.Error(t, err)
	assert.Equal(t, "[whatsapp:text] post message: context deadline exceeded", err.Error())
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var wrapped *WrappedError
	require.True(t, errors.As(err, &wrapped))
	assert.Equal(t, "whatsapp", wrapped.Module)
	assert.Equal(t, "text", wrapped.Operation)
}
