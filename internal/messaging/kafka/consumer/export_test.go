package consumer

import (
	"testing"
	"time"
)

func SetPublishRetryDelay(t *testing.T, d time.Duration) {
	t.Helper()
	prevDelay, prevMax := publishRetryDelay, maxPublishRetryDelay
	publishRetryDelay, maxPublishRetryDelay = d, d
	t.Cleanup(func() {
		publishRetryDelay, maxPublishRetryDelay = prevDelay, prevMax
	})
}
