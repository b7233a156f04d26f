package batch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"finparse/stmt-ledger/cmd/batch"
)

func TestBatchCommandMetadata(t *testing.T) {
	assert.Equal(t, "batch", batch.Cmd.Use)
	assert.Contains(t, batch.Cmd.Short, "directory")
	assert.NotNil(t, batch.Cmd.RunE)
}

func TestBatchCommandDialectFlag(t *testing.T) {
	flag := batch.Cmd.Flags().Lookup("dialect")
	assert.NotNil(t, flag)
	assert.Equal(t, "d", flag.Shorthand)
}

func TestBatchCommandLongDescription(t *testing.T) {
	assert.Contains(t, batch.Cmd.Long, "input directory")
	assert.Contains(t, batch.Cmd.Long, "one consolidated output file per account")
	assert.Contains(t, batch.Cmd.Long, "Example")
}
