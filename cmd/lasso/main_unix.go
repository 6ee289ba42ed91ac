//go:build linux || darwin

package main

import (
	"context"
	"runtime/debug"
	"strconv"

	"github.com/bnema/lasso/internal/logging"
	"golang.org/x/sys/unix"
)

func enableCrashForensics() {
	debug.SetTraceback("crash")
	raiseCoreLimit()
}

func raiseCoreLimit() {
	var limit unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_CORE, &limit); err != nil || limit.Cur >= limit.Max {
		return
	}
	limit.Cur = limit.Max
	_ = unix.Setrlimit(unix.RLIMIT_CORE, &limit)
}

// logCoreDumpLimits runs once logging is up; enableCrashForensics has no
// logger yet.
func logCoreDumpLimits(ctx context.Context) {
	log := logging.FromContext(ctx)

	var limit unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_CORE, &limit); err != nil {
		log.Debug().Err(err).Msg("failed to read RLIMIT_CORE")
		return
	}
	log.Debug().
		Str("rlimit_core_soft", rlimitString(limit.Cur)).
		Str("rlimit_core_hard", rlimitString(limit.Max)).
		Msg("core dump limits")
}

func rlimitString(v uint64) string {
	if v == unix.RLIM_INFINITY {
		return "infinity"
	}
	return strconv.FormatUint(v, 10)
}
