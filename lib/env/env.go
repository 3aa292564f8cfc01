// Package env reads process wide switches that apply before any flag is parsed.
package env

import (
	"os"
	"strconv"
	"time"
)

const (
	TEST_MODE = "TEST_MODE"
	DEBUG     = "DEBUG"
	TIMEOUT   = "ARRANGE_TIMEOUT"
)

func Test() bool {
	return os.Getenv(TEST_MODE) != ""
}

func Debug() bool {
	return os.Getenv(DEBUG) != ""
}

// Timeout returns $ARRANGE_TIMEOUT, a whole number of seconds.
func Timeout() (time.Duration, bool) {
	return parseTimeout(os.Getenv(TIMEOUT))
}

func parseTimeout(s string) (time.Duration, bool) {
	if s == "" {
		return 0, false
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return time.Duration(i) * time.Second, true
}
