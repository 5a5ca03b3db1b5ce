package cfddlc

import "github.com/btcsuite/btclog"

// log is the package-level logger. It is disabled by default; callers that
// want visibility into funding-transaction construction (insufficient-input
// warnings and the resolved funding vout) call UseLogger to wire up their
// own backend.
var log btclog.Logger

func init() {
	DisableLog()
}

// DisableLog disables all library log output. This is the default until
// UseLogger is called.
func DisableLog() {
	UseLogger(btclog.Disabled)
}

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(logger btclog.Logger) {
	log = logger
}
