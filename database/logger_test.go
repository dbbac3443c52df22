package database

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestLogger(buf *bytes.Buffer) *Logger {
	return NewLogger(zerolog.New(buf).Level(zerolog.DebugLevel))
}

func sqlFunc(sql string) func() (string, int64) {
	return func() (string, int64) { return sql, 1 }
}

func TestLogger_TraceFailedQuery(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf)

	l.Trace(context.Background(), time.Now(), sqlFunc("INSERT INTO books"), errors.New("boom"))

	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), "INSERT INTO books")
	assert.Contains(t, buf.String(), "boom")
}

func TestLogger_TraceRecordNotFoundIsNotAnError(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf)

	l.Trace(context.Background(), time.Now(), sqlFunc("SELECT * FROM authors"), gorm.ErrRecordNotFound)

	assert.NotContains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"level":"debug"`)
}

func TestLogger_TraceSlowQuery(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf)

	l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFunc("SELECT 1"), nil)

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "slow query")
}

func TestLogger_Silent(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf).LogMode(gormlogger.Silent)

	l.Trace(context.Background(), time.Now(), sqlFunc("SELECT 1"), errors.New("boom"))
	l.Error(context.Background(), "oops %d", 1)

	assert.Empty(t, buf.String())
}

func TestLogger_LogModeDoesNotMutateReceiver(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf)

	_ = l.LogMode(gormlogger.Silent)
	l.Warn(context.Background(), "still %s", "here")

	assert.Contains(t, buf.String(), "still here")
}
