package upload

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"RevenueTracker/api/constants"
	"RevenueTracker/internal/revenue"
	"RevenueTracker/internal/tabular"
)

func TestUploadErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing file", errNoFile, constants.ErrNoFilesUploaded},
		{"wrapped missing file", fmt.Errorf("engagement: %w", errNoFile), constants.ErrNoFilesUploaded},
		{"unsupported type", fmt.Errorf("%w: report.pdf", tabular.ErrUnsupportedType), constants.ErrUnsupportedFile},
		{"empty engagement export", revenue.ErrEmptyTable, constants.ErrEmptyEngagement},
		{"missing report date", revenue.ErrMissingDate, constants.ErrInvalidReportDate},
		{"other errors pass through", fmt.Errorf("connection refused"), "connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uploadErrorMessage(tt.err))
		})
	}
}

func TestUploadErrorMessageSchemaNotFound(t *testing.T) {
	_, err := tabular.Locate([]tabular.Sheet{
		{Name: "Hoja1", Rows: [][]string{{"EngagementID"}}},
	}, []string{"EngagementID", "FYTD_ANSRAmt"}, 10, "")

	msg := uploadErrorMessage(err)
	assert.Contains(t, msg, constants.ErrSchemaNotFound)
	assert.Contains(t, msg, "FYTD_ANSRAmt")
}
