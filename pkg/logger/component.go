package logger

import (
	"fmt"
	"strings"
)

// ComponentLogger wraps the default logger with a fixed component name and
// structured key/value pairs.
type ComponentLogger struct {
	component string
}

// WithComponent returns a logger scoped to the given component name.
// Messages are formatted as "[component] message key=value ...".
func WithComponent(component string) *ComponentLogger {
	return &ComponentLogger{component: component}
}

func (c *ComponentLogger) format(msg string, keysAndValues ...interface{}) string {
	if len(keysAndValues) == 0 {
		return fmt.Sprintf("[%s] %s", c.component, msg)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", c.component, msg)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprintf("%v", keysAndValues[i])
		if i+1 < len(keysAndValues) {
			fmt.Fprintf(&b, " %s=%v", key, keysAndValues[i+1])
		} else {
			// Dangling key without a value
			fmt.Fprintf(&b, " %s=", key)
		}
	}
	return b.String()
}

// Debug logs a debug message with key/value pairs
func (c *ComponentLogger) Debug(msg string, keysAndValues ...interface{}) {
	defaultLogger.write(LevelDebug, c.format(msg, keysAndValues...))
}

// Info logs an info message with key/value pairs
func (c *ComponentLogger) Info(msg string, keysAndValues ...interface{}) {
	defaultLogger.write(LevelInfo, c.format(msg, keysAndValues...))
}

// Warn logs a warning message with key/value pairs
func (c *ComponentLogger) Warn(msg string, keysAndValues ...interface{}) {
	defaultLogger.write(LevelWarn, c.format(msg, keysAndValues...))
}

// Error logs an error message with key/value pairs
func (c *ComponentLogger) Error(msg string, keysAndValues ...interface{}) {
	defaultLogger.write(LevelError, c.format(msg, keysAndValues...))
}
