package mapper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vincent-Morcilla/buildingdata/errors"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapper.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleCSV = `Building,StreamID,Filename,strBrickLabel
A,a1,a1.csv,Air Temperature Sensor
A,a2,a2.csv,Zone Air Temperature Setpoint
B,s1,s1.csv,Air Temperature Sensor
B,s2,s2.csv,Damper Position Sensor
B,s3,s3.csv,Chilled Water Flow Sensor
B,s4,FILE NOT SAVED,Occupancy Sensor
`

func TestLoad(t *testing.T) {
	table, err := Load(writeCSV(t, sampleCSV))
	require.NoError(t, err)

	// The unsaved row is dropped even without a building filter
	assert.Equal(t, 5, table.Len())

	id, ok := table.StreamIDByFilename("s2.csv")
	require.True(t, ok)
	assert.Equal(t, "s2", id)

	_, ok = table.StreamIDByFilename("missing.csv")
	assert.False(t, ok)
}

func TestLoadWithBuildingFilter(t *testing.T) {
	table, err := Load(writeCSV(t, sampleCSV), WithBuilding("B"))
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	for _, rec := range table.Records() {
		assert.Equal(t, "B", rec.Building)
	}

	// Filter is exact and case-sensitive
	table, err = Load(writeCSV(t, sampleCSV), WithBuilding("b"))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestLabel(t *testing.T) {
	table, err := Load(writeCSV(t, sampleCSV), WithBuilding("B"))
	require.NoError(t, err)

	label, err := table.Label("s2")
	require.NoError(t, err)
	assert.Equal(t, "Damper Position Sensor", label)

	_, err = table.Label("a1") // filtered out with building A
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.ErrorIs(t, err, errors.ErrStreamNotFound)
}

func TestContains(t *testing.T) {
	table, err := Load(writeCSV(t, sampleCSV))
	require.NoError(t, err)

	assert.True(t, table.Contains("s1"))
	assert.False(t, table.Contains("s4")) // unsaved row dropped
	assert.False(t, table.Contains("nope"))
}

func TestLoadHeaderAliases(t *testing.T) {
	csv := `building,stream_id,filename,label
B,s1,s1.csv,Air Temperature Sensor
`
	table, err := Load(writeCSV(t, csv))
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	label, err := table.Label("s1")
	require.NoError(t, err)
	assert.Equal(t, "Air Temperature Sensor", label)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		sentinel error
	}{
		{
			name:     "missing required column",
			content:  "Building,StreamID,Filename\nB,s1,s1.csv\n",
			sentinel: errors.ErrMapperMalformed,
		},
		{
			name:     "empty file",
			content:  "",
			sentinel: errors.ErrMapperMalformed,
		},
		{
			name:     "ragged row",
			content:  "Building,StreamID,Filename,strBrickLabel\nB,s1\n",
			sentinel: errors.ErrMapperMalformed,
		},
		{
			name:     "empty stream id",
			content:  "Building,StreamID,Filename,strBrickLabel\nB,,s1.csv,Label\n",
			sentinel: errors.ErrMapperMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeCSV(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.IsFatal(err))
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
	assert.ErrorIs(t, err, errors.ErrMapperNotFound)
}
