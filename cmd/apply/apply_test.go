package apply_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"finparse/stmt-ledger/cmd/apply"
)

func TestApplyCommandMetadata(t *testing.T) {
	assert.Equal(t, "apply", apply.Cmd.Use)
	assert.Contains(t, apply.Cmd.Short, "template mapping")
	assert.NotNil(t, apply.Cmd.RunE)
}

func TestApplyCommandTemplateFlag(t *testing.T) {
	flag := apply.Cmd.Flags().Lookup("template")
	assert.NotNil(t, flag)
	assert.Equal(t, "t", flag.Shorthand)
}

func TestApplyCommandExample(t *testing.T) {
	assert.Contains(t, apply.Cmd.Long, "Example")
	assert.Contains(t, apply.Cmd.Long, "stmt-ledger apply")
}
