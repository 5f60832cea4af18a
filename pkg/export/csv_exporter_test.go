package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderFollowsColumnOrder(t *testing.T) {
	data := Dataset{
		Columns: TaskListColumns(),
		Rows: [][]string{
			{"Math", "Worksheet", "2024-06-01 17:00", "COMPLETED", "yes"},
		},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "Subject,Title,Deadline,Status,Completed\nMath,Worksheet,2024-06-01 17:00,COMPLETED,yes\n", string(out))
}

func TestCSVRenderRejectsMisalignedRow(t *testing.T) {
	data := Dataset{
		Columns: TaskListColumns(),
		Rows:    [][]string{{"Math", "Worksheet"}},
	}

	_, err := NewCSVExporter().Render(data)
	require.Error(t, err)
}

func TestColumnWidthsSplitRemainder(t *testing.T) {
	widths := columnWidths([]Column{{Header: "A", Width: 90}, {Header: "B"}, {Header: "C"}})
	assert.Equal(t, 90.0, widths[0])
	assert.Equal(t, 50.0, widths[1])
	assert.Equal(t, 50.0, widths[2])
}
