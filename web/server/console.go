package server

import (
	"fmt"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// ConsoleMessage is one line of render output forwarded to the browser
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger is the core.Logger handed to a render started over HTTP. Lines
// go to the request's console stream and, when set, to the server log.
type WebLogger struct {
	renderID string
	console  chan<- ConsoleMessage
	echo     core.Logger
}

// NewWebLogger returns a logger for renderID. A nil console disables
// streaming; a nil echo keeps lines out of the server log.
func NewWebLogger(renderID string, console chan<- ConsoleMessage, echo core.Logger) core.Logger {
	return &WebLogger{renderID: renderID, console: console, echo: echo}
}

func (wl *WebLogger) Printf(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)

	if wl.echo != nil {
		wl.echo.Printf("[%s] %s", wl.renderID, line)
	}
	if wl.console == nil {
		return
	}

	msg := ConsoleMessage{RenderID: wl.renderID, Message: line, Timestamp: time.Now(), Level: "info"}
	select {
	case wl.console <- msg:
	default:
		// A slow client loses lines rather than stalling the workers
	}
}
