package testtools

import (
	"fmt"
)

type callingFatalOnErrorFuncStats struct {
	FatalOnErrorCallsCount int
	Err                    error
}

type callingPrintFuncStats struct {
	PrintfCallsCount int
	Messages         []string
}

// LastMessage returns the most recent formatted message or an empty string.
func (stats *callingPrintFuncStats) LastMessage() string {
	if len(stats.Messages) == 0 {
		return ""
	}
	return stats.Messages[len(stats.Messages)-1]
}

type InfoLoggerMock struct {
	Stats *callingPrintFuncStats
}

func (loggerMock InfoLoggerMock) Printf(format string, v ...interface{}) {
	loggerMock.Stats.PrintfCallsCount++
	loggerMock.Stats.Messages = append(loggerMock.Stats.Messages, fmt.Sprintf(format, v...))
}

type ErrorLoggerMock struct {
	Stats *callingFatalOnErrorFuncStats
}

func (loggerMock ErrorLoggerMock) FatalOnError(err error) {
	loggerMock.Stats.FatalOnErrorCallsCount++
	loggerMock.Stats.Err = err
}

func MockLoggers() (InfoLoggerMock, ErrorLoggerMock) {
	return InfoLoggerMock{Stats: &callingPrintFuncStats{}},
		ErrorLoggerMock{Stats: &callingFatalOnErrorFuncStats{}}
}
