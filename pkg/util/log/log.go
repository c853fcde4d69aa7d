// Copyright 2015 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package log implements context-aware leveled logging. Messages carry the
// log tags attached to their context and are formatted with redaction
// markers around unsafe arguments.
package log

import (
	"context"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
	"github.com/sirupsen/logrus"
)

// Severity is the severity of a log entry.
type Severity int

// The supported severities, in increasing order.
const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) level() logrus.Level {
	switch s {
	case SeverityWarning:
		return logrus.WarnLevel
	case SeverityError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

var logging struct {
	logger     *logrus.Logger
	verbosity  int32
	redactable int32
}

func init() {
	logging.logger = logrus.New()
	logging.logger.SetOutput(os.Stderr)
	logging.logger.SetFormatter(&logrus.TextFormatter{
		DisableQuote:     true,
		FullTimestamp:    true,
		QuoteEmptyFields: true,
	})
	logging.logger.SetLevel(logrus.DebugLevel)
}

// SetOutput redirects all log output to w.
func SetOutput(w io.Writer) {
	logging.logger.SetOutput(w)
}

// SetVerbosity sets the level up to which V() returns true.
func SetVerbosity(level int) {
	atomic.StoreInt32(&logging.verbosity, int32(level))
}

// SetRedactable controls whether redaction markers are kept in the output.
func SetRedactable(redactable bool) {
	var v int32
	if redactable {
		v = 1
	}
	atomic.StoreInt32(&logging.redactable, v)
}

// V returns true if the logging verbosity is set to the specified level or
// higher.
func V(level int) bool {
	return int32(level) <= atomic.LoadInt32(&logging.verbosity)
}

// Infof logs to the INFO severity.
func Infof(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, SeverityInfo, format, args)
}

// Warningf logs to the WARNING severity.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, SeverityWarning, format, args)
}

// Errorf logs to the ERROR severity.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, SeverityError, format, args)
}

// VEventf logs at INFO severity if the verbosity is at least the given level.
func VEventf(ctx context.Context, level int, format string, args ...interface{}) {
	if V(level) {
		logDepth(ctx, SeverityInfo, format, args)
	}
}

// FormatWithContextTags formats the string and prepends the context
// tags.
//
// Redaction markers are *not* inserted. The resulting
// string is generally unsafe for reporting.
func FormatWithContextTags(ctx context.Context, format string, args ...interface{}) string {
	var buf strings.Builder
	formatTags(ctx, &buf)
	buf.WriteString(redact.Sprintf(format, args...).StripMarkers())
	return buf.String()
}

func logDepth(ctx context.Context, sev Severity, format string, args []interface{}) {
	msg := redact.Sprintf(format, args...)
	var buf strings.Builder
	formatTags(ctx, &buf)
	if atomic.LoadInt32(&logging.redactable) == 1 {
		buf.WriteString(string(msg))
	} else {
		buf.WriteString(msg.StripMarkers())
	}
	logging.logger.Log(sev.level(), buf.String())
}

func formatTags(ctx context.Context, buf *strings.Builder) {
	if ctx == nil {
		return
	}
	tags := logtags.FromContext(ctx)
	if tags == nil || len(tags.Get()) == 0 {
		return
	}
	buf.WriteByte('[')
	tags.FormatToString(buf)
	buf.WriteString("] ")
}
