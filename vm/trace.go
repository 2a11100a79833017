package vm

import (
	"github.com/tliron/commonlog"

	// Registers the simple stderr-backed commonlog backend, the same
	// registration the teacher's LSP server performs in server/lsp.go.
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("gclang.vm")

// traceInstruction logs one fetch-decode-execute step at debug level. It
// is only ever called when bytecode tracing is enabled, so the
// formatting cost is paid only in that mode.
func traceInstruction(depth int, blobLabel string, index int, op string) {
	log.Debugf("pc=%s:%d depth=%d op=%s", blobLabel, index, depth, op)
}

// traceSweep logs the outcome of one GC pass at debug level.
func traceSweep(s SweepStats) {
	log.Debugf(
		"gc sweep: workDone=%d swept=%d survivors=%d nextThreshold=%d took=%s",
		s.WorkDone, s.Swept, s.Survivors, s.NextThreshold, s.Duration,
	)
}
