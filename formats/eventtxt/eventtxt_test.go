package eventtxt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seistools/catform/formats"
	"github.com/seistools/catform/formats/csvtab"
)

const sample = "#EventID|Time|Latitude|Longitude|Depth/km|Author|Catalog|Contributor|ContributorID|MagType|Magnitude|MagAuthor|EventLocationName\n" +
	"us7000abcd|2024-04-26T12:30:15.500|35.0241|-117.2218|10.0|us|us|us|us7000abcd|mb|4.3|us|Southern California\n" +
	"us7000abce|2024-04-27T01:02:03.000|-12.4500|166.0300|33.0|us|us|us|us7000abce|Mww|5.1|us|Santa Cruz Islands\n"

func TestRead(t *testing.T) {
	cat, err := Read(formats.StreamSource(strings.NewReader(sample)), Config{})
	require.NoError(t, err)
	require.Equal(t, 2, cat.Len())

	ev := cat.Events[0]
	assert.Equal(t, "us7000abcd", ev.ResourceID.ShortID())

	origin, err := ev.ResolveOrigin()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 4, 26, 12, 30, 15, 500000000, time.UTC), origin.Time)
	assert.InDelta(t, 35.0241, origin.Latitude, 1e-6)
	assert.InDelta(t, -117.2218, origin.Longitude, 1e-6)
	assert.InDelta(t, 10000, origin.Depth, 1e-6)

	mag, err := ev.ResolveMagnitude()
	require.NoError(t, err)
	assert.InDelta(t, 4.3, mag.Mag, 1e-9)
	assert.Equal(t, "mb", mag.Type)
}

func TestReadDefaultMagType(t *testing.T) {
	data := "#EventID|Time|Latitude|Longitude|Depth/km|Author|Catalog|Contributor|ContributorID|MagType|Magnitude|MagAuthor|EventLocationName\n" +
		"ev1|2024-04-26T12:00:00|35.0|-117.0|10.0|us|us|us|ev1|None|4.3|us|Somewhere\n"
	cat, err := Read(formats.StreamSource(strings.NewReader(data)), Config{
		Default: csvtab.Defaults{MagType: "M"},
	})
	require.NoError(t, err)
	mag, err := cat.Events[0].ResolveMagnitude()
	require.NoError(t, err)
	assert.Equal(t, "M", mag.Type)
}

func TestSniff(t *testing.T) {
	cases := []struct {
		name string
		data string
		want formats.Result
	}{
		{"sample", sample, formats.Match},
		{"header only", strings.SplitAfter(sample, "\n")[0], formats.NoMatch},
		{"wrong column count", "a|b|c\n1|2|3\n", formats.NoMatch},
		{"comma separated", "time,lat,lon,dep,mag\n2024-04-26T12:00:00,35.0,-117.0,10,3.2\n", formats.NoMatch},
		{"undecodable row", strings.Repeat("x|", 12) + "x\n" + strings.Repeat("y|", 12) + "y\n", formats.NoMatch},
		{"empty", "", formats.NoMatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Sniff(formats.StreamSource(strings.NewReader(tc.data))))
		})
	}
}

func TestRegistered(t *testing.T) {
	f, err := formats.Get("EVENTTXT")
	require.NoError(t, err)
	assert.NotNil(t, f.Read)
	assert.Nil(t, f.Write)
}
