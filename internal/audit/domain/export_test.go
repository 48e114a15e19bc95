package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExportFormat(t *testing.T) {
	f, err := ParseExportFormat("")
	require.NoError(t, err)
	assert.Equal(t, ExportFormatCSV, f)

	f, err = ParseExportFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, ExportFormatJSON, f)
	assert.Equal(t, "application/json", f.ContentType())
	assert.Equal(t, ".json", f.Extension())

	_, err = ParseExportFormat("xlsx")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
