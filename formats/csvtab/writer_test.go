package csvtab

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seistools/catform/catalog"
	"github.com/seistools/catform/formats"
)

func TestWrite(t *testing.T) {
	t.Run("basic preset lines", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(sampleCatalog(), formats.StreamDest(&buf), DefaultWriteConfig()))

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "time,lat,lon,dep,mag,magtype,id", lines[0])
		assert.Equal(t, "2024-04-26T12:30:15.50000,35.024100,-117.221800,10.000,3.25,Ml,evt001", lines[1])
		assert.Equal(t, "2024-04-27T01:02:03.00000,-12.450000,166.030000,33.000,5.10,Mw,evt002", lines[2])
	})

	t.Run("custom field template", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := DefaultWriteConfig()
		cfg.Fields = "{lat:.2f} {lon:.2f}"
		require.NoError(t, Write(sampleCatalog(), formats.StreamDest(&buf), cfg))

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		assert.Equal(t, "lat,lon", lines[0])
		assert.Equal(t, "35.02,-117.22", lines[1])
	})

	t.Run("empty catalog writes header only", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(catalog.New(), formats.StreamDest(&buf), DefaultWriteConfig()))
		assert.Equal(t, "time,lat,lon,dep,mag,magtype,id\n", buf.String())
	})

	t.Run("depth in meters", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := DefaultWriteConfig()
		cfg.Depth = DepthMeters
		require.NoError(t, Write(sampleCatalog(), formats.StreamDest(&buf), cfg))
		assert.Contains(t, buf.String(), ",10000.000,")
	})
}

func TestWriteMissingOrigin(t *testing.T) {
	cat := sampleCatalog()
	hollow := catalog.NewEvent()
	hollow.ResourceID = "smi:local/event/hollow1"
	cat.Append(hollow)

	logger, logs := testLogger()
	var buf bytes.Buffer
	cfg := DefaultWriteConfig()
	cfg.Logger = logger
	require.NoError(t, Write(cat, formats.StreamDest(&buf), cfg))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.NotContains(t, buf.String(), "hollow1")

	assert.Equal(t, 1, strings.Count(logs.String(), "skipping event"))
	assert.Contains(t, logs.String(), "hollow1")

	got, err := Read(formats.StreamSource(&buf), DefaultReadConfig())
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
}

func TestWriteMissingMagnitude(t *testing.T) {
	ev := &catalog.Event{
		ResourceID: "smi:local/event/quiet1",
		Origins: []*catalog.Origin{{
			Time:      time.Date(2024, 4, 26, 12, 0, 0, 0, time.UTC),
			Latitude:  35,
			Longitude: -117,
			Depth:     10000,
		}},
	}

	logger, logs := testLogger()
	var buf bytes.Buffer
	cfg := DefaultWriteConfig()
	cfg.Logger = logger
	require.NoError(t, Write(catalog.New(ev), formats.StreamDest(&buf), cfg))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2024-04-26T12:00:00.00000,35.000000,-117.000000,10.000,,,quiet1", lines[1])
	assert.Contains(t, logs.String(), "no magnitude found")

	got, err := Read(formats.StreamSource(strings.NewReader(buf.String())), DefaultReadConfig())
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	assert.Empty(t, got.Events[0].Magnitudes)
}
