package notification_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/notification"
)

func TestLogDispatcher_MasksRecipient(t *testing.T) {
	var buf bytes.Buffer
	d := notification.NewLogDispatcher(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, d.Dispatch(context.Background(), notification.ChannelMessage, message()))
	assert.Contains(t, buf.String(), `"channel":"message"`)
	assert.NotContains(t, buf.String(), "asha@example.org")
}
