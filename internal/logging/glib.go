package logging

import (
	"context"
	"sync"

	"github.com/jwijenbergh/puregotk/v4/glib"
	"github.com/rs/zerolog"
)

// The GLib callback cannot carry a Go pointer, so the handler reads a
// package-level logger installed exactly once.
var (
	glibLogger     zerolog.Logger
	glibLoggerOnce sync.Once
)

// InstallGLibLogHandler routes GTK4/WebKitGTK/GLib messages to the provided
// zerolog logger. Must be called before GTK/WebKit initialization. When
// enableDebug is true, GLib debug messages are captured as well.
func InstallGLibLogHandler(ctx context.Context, logger zerolog.Logger, enableDebug bool) {
	log := FromContext(ctx)

	glibLoggerOnce.Do(func() {
		glibLogger = logger

		if enableDebug {
			glib.LogSetDebugEnabled(true)
		}

		handler := glib.LogFunc(glibLogHandler)
		glib.LogSetDefaultHandler(&handler, 0)

		log.Debug().Bool("debug_enabled", enableDebug).Msg("GLib log handler installed")
	})
}

func glibLogHandler(domain string, level glib.LogLevelFlags, message string, _ uintptr) {
	event := glibEvent(level)
	if domain != "" {
		event = event.Str("glib_domain", domain)
	}
	event.Msg(message)
}

// glibEvent maps GLib level flags to the closest zerolog event.
func glibEvent(level glib.LogLevelFlags) *zerolog.Event {
	switch {
	case level&(glib.GLogLevelErrorValue|glib.GLogLevelCriticalValue) != 0:
		return glibLogger.Error()
	case level&glib.GLogLevelWarningValue != 0:
		return glibLogger.Warn()
	case level&(glib.GLogLevelMessageValue|glib.GLogLevelInfoValue) != 0:
		return glibLogger.Info()
	default:
		return glibLogger.Debug()
	}
}
