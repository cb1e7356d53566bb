package csvtab

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seistools/catform/formats"
)

func TestSniff(t *testing.T) {
	cases := []struct {
		name string
		data string
		want formats.Result
	}{
		{
			name: "basic table",
			data: basicCSV,
			want: formats.Match,
		},
		{
			name: "composite time table",
			data: "year,mon,day,hour,minu,sec,lat,lon,dep,mag\n2024,4,26,12,30,15.5,35.0,-117.0,10,3.2\n",
			want: formats.Match,
		},
		{
			name: "extra columns tolerated",
			data: "time,lat,lon,dep,mag,agency\n2024-04-26T12:00:00,35.0,-117.0,10,3.2,XYZ\n",
			want: formats.Match,
		},
		{
			name: "extended template columns",
			data: "time,lat,lon,dep,mag,magtype,id,lat_err\n2024-04-26T12:00:00,35.0,-117.0,10,3.2,Ml,evt001,0.01\n",
			want: formats.Match,
		},
		{
			name: "missing depth column",
			data: "time,lat,lon,mag\n2024-04-26T12:00:00,35.0,-117.0,3.2\n",
			want: formats.NoMatch,
		},
		{
			name: "header only",
			data: "time,lat,lon,dep,mag\n",
			want: formats.NoMatch,
		},
		{
			name: "undecodable first row",
			data: "time,lat,lon,dep,mag\nwhenever,35.0,-117.0,10,3.2\n",
			want: formats.NoMatch,
		},
		{
			name: "empty input",
			data: "",
			want: formats.NoMatch,
		},
		{
			name: "prose",
			data: "This is not a catalog.\nNot even close.\n",
			want: formats.NoMatch,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Sniff(formats.StreamSource(strings.NewReader(tc.data)))
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("agrees with the reader on extra columns", func(t *testing.T) {
		data := "time,lat,lon,dep,mag,magtype,id,agency\n" +
			"2024-04-26T12:00:00,35.0,-117.0,10,3.2,Ml,evt001,XYZ\n"
		cat, err := Read(formats.StreamSource(strings.NewReader(data)), DefaultReadConfig())
		require.NoError(t, err)
		require.Equal(t, 1, cat.Len())
		assert.Equal(t, formats.Match, Sniff(formats.StreamSource(strings.NewReader(data))))
	})

	t.Run("missing path is inconclusive", func(t *testing.T) {
		src := formats.PathSource(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Equal(t, formats.Inconclusive, Sniff(src))
	})
}
