package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"finparse/stmt-ledger/internal/validation"
)

func TestIsValidInputFile(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"pdf document", "statements/may.pdf", false},
		{"uppercase extension", "statements/MAY.PDF", false},
		{"pre-extracted json", "fixtures/kotak.json", false},
		{"empty path", "", true},
		{"unsupported type", "statements/may.xlsx", true},
		{"no extension", "statements/may", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.IsValidInputFile(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsValidOutputFormat(t *testing.T) {
	for _, format := range []string{"json", "csv", "table"} {
		assert.NoError(t, validation.IsValidOutputFormat(format))
	}
	assert.Error(t, validation.IsValidOutputFormat("xml"))
	assert.Error(t, validation.IsValidOutputFormat(""))
}
