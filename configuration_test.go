package odr2gml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfigurationFromTOML(t *testing.T) {
	content := `
[transformer]
tolerance = 1e-6
crs_epsg = 25832

[writer]
discretization_step_size = 0.5
`
	fname := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(fname, []byte(content), 0644))

	configuration, err := ReadConfigurationFromTOML(fname)
	require.NoError(t, err)

	// user supplied values override
	assert.Equal(t, 1e-6, configuration.Transformer.Tolerance)
	assert.Equal(t, 25832, configuration.Transformer.CrsEpsg)
	assert.Equal(t, 0.5, configuration.Writer.DiscretizationStepSize)

	// missing values fall back to the defaults
	assert.Equal(t, "opendrive_", configuration.Transformer.AttributesPrefix)
	assert.Equal(t, "UUID_", configuration.Writer.GmlIDPrefix)
	assert.Equal(t, 16, configuration.Writer.CircleSlices)

	_, err = ReadConfigurationFromTOML(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestExportToCSV(t *testing.T) {
	transformer := NewRoadspaceTransformer(DefaultTransformerConfiguration(), nil)
	record := straightRoadRecord(10)
	roadspace, _, err := transformer.Transform(&OpenDriveData{Roads: []*OpenDriveRoad{record}})
	require.NoError(t, err)

	dir := t.TempDir()
	fname := filepath.Join(dir, "out.csv")
	require.NoError(t, roadspace.ExportToCSV(fname, 0.7))

	boundaries, err := os.ReadFile(filepath.Join(dir, "out_lane_boundaries.csv"))
	require.NoError(t, err)
	content := string(boundaries)
	assert.Contains(t, content, "road_id;lane_section_id;lane_id")
	assert.Contains(t, content, "LINESTRING")

	_, err = os.Stat(filepath.Join(dir, "out_filler_surfaces.csv"))
	assert.NoError(t, err)
}
