package log_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/anteater/internal/log"
)

func TestInit_BuildsProductionLogger(t *testing.T) {
	assert.NoError(t, log.Init(false))
	assert.NoError(t, log.Init(true))
	log.Sync()
}

func TestLoggingCalls_DoNotPanicBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		log.SkippedFile("a.go", errors.New("parse error"))
		log.SkippedFunction("a.go", "Foo", errors.New("ssa error"))
		log.RunStarted("run-1", "/repo")
		log.RunFinished("run-1", 3, 42)
		log.Error("config error", errors.New("bad config"))
	})
}
