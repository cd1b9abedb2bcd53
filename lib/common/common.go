package common

import (
	"fmt"
	"runtime"
	"time"
)

var (
	MaxParallelism = runtime.NumCPU()
)

func FormatDateRange(start int64, end int64) string {
	return fmt.Sprintf("%s to %s", FormatDate(start), FormatDate(end))
}

func FormatDate(value int64) string {
	return time.UnixMilli(value).UTC().Format("2006-01-02T15:04:05")
}

// ClampParallelism bounds the requested worker count to [1, MaxParallelism].
func ClampParallelism(parallelism int) int {
	if parallelism <= 0 {
		return 1
	}
	if parallelism > MaxParallelism {
		return MaxParallelism
	}
	return parallelism
}

func FormatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
