package actor

import (
	"context"
	"fmt"
	"strings"

	"github.com/btcsuite/btclog/v2"
)

// log is the package-level structured logger used by the cell, mailbox,
// dispatcher and ask bridge. It defaults to a disabled sink so that
// importing this package never produces output unless a caller opts in via
// UseLogger.
var log btclog.Logger = btclog.Disabled

// UseLogger overrides the package-level logger. Call once during process
// init, before any ActorSystem is constructed.
func UseLogger(l btclog.Logger) {
	if l == nil {
		l = btclog.Disabled
	}
	log = l
}

// kv renders an alternating key/value list ("k1", v1, "k2", v2, ...) into a
// single "k1=v1 k2=v2" suffix. btclog.Logger only exposes Sprint/Printf
// style methods, so the structured keyvals calling convention used
// throughout this package is reassembled here rather than assumed to
// exist on the logger itself.
func kv(pairs ...interface{}) string {
	if len(pairs) == 0 {
		return ""
	}

	var sb strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			sb.WriteByte(' ')
		}
		key := pairs[i]
		if i+1 < len(pairs) {
			sb.WriteString(formatPair(key, pairs[i+1]))
		} else {
			sb.WriteString(formatPair(key, "<missing>"))
		}
	}
	return sb.String()
}

func formatPair(key, val interface{}) string {
	return toString(key) + "=" + toString(val)
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// debugS, infoS, warnS and errorS give the rest of this package a
// context-aware, key/value logging call without requiring btclog.Logger
// itself to expose that convention.
func debugS(_ context.Context, msg string, pairs ...interface{}) {
	log.Debugf("%s %s", msg, kv(pairs...))
}

func infoS(_ context.Context, msg string, pairs ...interface{}) {
	log.Infof("%s %s", msg, kv(pairs...))
}

func warnS(_ context.Context, msg string, pairs ...interface{}) {
	log.Warnf("%s %s", msg, kv(pairs...))
}

func errorS(_ context.Context, msg string, pairs ...interface{}) {
	log.Errorf("%s %s", msg, kv(pairs...))
}
