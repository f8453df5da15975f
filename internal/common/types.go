package common

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type Done struct{}

// Cache is the key-value contract shared by the redis-backed and the
// in-memory implementations in internal/cache
type Cache interface {
	Set(key string, value string, ttl time.Duration) (err error)

	// SetNx sets `key` to `value` only if `key` does not already exist
	// and returns whether the write happened; this is the primitive the
	// webhook deduplication window is built on
	SetNx(key string, value string, ttl time.Duration) (isSet bool, err error)

	Get(key string) (value string, err error)
	Scan(prefix string) (keys []string, err error)
	Del(key string) (err error)
}

type ServiceLog struct {
	Level   LogLevel `json:"level"`
	Message string   `json:"message"`
}

func ServiceLogf(level LogLevel, text string, f ...any) ServiceLog {
	return ServiceLog{
		Level:   level,
		Message: fmt.Sprintf(text, f...),
	}
}

func StartServiceLogLoop(serviceLogs chan ServiceLog) {
	go func() {
		for {
			serviceLog, ok := <-serviceLogs
			if !ok {
				return
			}
			log := logrus.Info
			switch serviceLog.Level {
			case LogLevelTrace:
				log = logrus.Trace
			case LogLevelDebug:
				log = logrus.Debug
			case LogLevelInfo:
				log = logrus.Info
			case LogLevelWarn:
				log = logrus.Warn
			case LogLevelError:
				log = logrus.Error
			}
			log(serviceLog.Message)
		}
	}()
}
