package common

import "sync"

var (
	noopServiceLog     chan ServiceLog
	noopServiceLogOnce sync.Once
)

// GetNoopServiceLog returns a shared channel that discards everything
// sent to it; callers that do not care about service logs can use it
// instead of nil-checking their log channel
func GetNoopServiceLog() chan ServiceLog {
	noopServiceLogOnce.Do(func() {
		noopServiceLog = make(chan ServiceLog, 64)
		go func() {
			for range noopServiceLog {
			}
		}()
	})
	return noopServiceLog
}
