package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/anteater/internal/config"
)

func TestModuleName_ParsesGoMod(t *testing.T) {
	data := []byte("module github.com/example/widget\n\ngo 1.23\n")
	assert.Equal(t, "github.com/example/widget", config.ModuleName("/repo/go.mod", data))
}

func TestModuleName_FallsBackToDirNameOnGarbage(t *testing.T) {
	name := config.ModuleName("/repo/widget/go.mod", []byte("not a go.mod at all"))
	assert.Equal(t, "widget", name)
}
