// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomHandler_HandleLog(t *testing.T) {
	var buf bytes.Buffer
	h := &CustomHandler{Writer: &buf}

	e := &log.Entry{
		Level:     log.WarnLevel,
		Message:   "query failed",
		Timestamp: time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC),
		Fields:    log.Fields{"target": "i686-pc-windows-msvc", "code": 1},
	}
	require.NoError(t, h.HandleLog(e))
	assert.Equal(t, "2025-03-04 05:06:07 W query failed code=1 target=i686-pc-windows-msvc\n", buf.String())
}

func TestCustomHandler_NoFields(t *testing.T) {
	var buf bytes.Buffer
	h := &CustomHandler{Writer: &buf}

	require.NoError(t, h.HandleLog(&log.Entry{Level: log.DebugLevel, Message: "hello"}))
	assert.Contains(t, buf.String(), " D hello\n")
}

func TestInitLogger(t *testing.T) {
	t.Setenv("TCFG_LOG", "debug")
	InitLogger()
	l, ok := log.Log.(*log.Logger)
	require.True(t, ok)
	assert.Equal(t, log.DebugLevel, l.Level)

	t.Setenv("TCFG_LOG", "nonsense")
	InitLogger()
	assert.Equal(t, log.ErrorLevel, log.Log.(*log.Logger).Level)

	t.Setenv("TCFG_LOG", "")
	InitLogger()
	assert.Equal(t, log.ErrorLevel, log.Log.(*log.Logger).Level)
}
