package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaptureLogger(t *testing.T) {
	logger, logs := NewCaptureLogger()
	assert.Empty(t, logs.Lines())

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Debug("created node", "n", i)
		}()
	}
	wg.Wait()

	assert.Len(t, logs.Lines(), 4)
	assert.True(t, logs.Contains("msg=\"created node\""))
	assert.False(t, logs.Contains("deleted"))
}
