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

func pickedEvent() *catalog.Event {
	origin := &catalog.Origin{
		ResourceID: "smi:local/origin/o1",
		Time:       time.Date(2024, 4, 26, 12, 0, 0, 0, time.UTC),
		Latitude:   35,
		Longitude:  -117,
		Depth:      10000,
	}
	p1 := &catalog.Pick{
		ResourceID: "smi:local/pick/p1",
		Time:       origin.Time.Add(1520 * time.Millisecond),
		WaveformID: catalog.ParseWaveformStreamID("GR.FUR..HHZ"),
		PhaseHint:  "P",
	}
	p2 := &catalog.Pick{
		ResourceID: "smi:local/pick/p2",
		Time:       origin.Time.Add(2750 * time.Millisecond),
		WaveformID: catalog.ParseWaveformStreamID("GR.FUR..HHN"),
		PhaseHint:  "S",
	}
	origin.Arrivals = []*catalog.Arrival{
		{PickID: p1.ResourceID, Phase: "Pg", TimeWeight: 0.5},
		{PickID: p2.ResourceID, Phase: "Sg", TimeWeight: 2},
	}
	return &catalog.Event{
		ResourceID: "smi:local/event/evt001",
		Origins:    []*catalog.Origin{origin},
		Picks:      []*catalog.Pick{p1, p2},
	}
}

func TestPickRoundTrip(t *testing.T) {
	ev := pickedEvent()
	var buf bytes.Buffer
	require.NoError(t, WritePicks(ev, formats.StreamDest(&buf), DefaultWriteConfig()))

	got := &catalog.Event{
		ResourceID: ev.ResourceID,
		Origins: []*catalog.Origin{{
			Time:      ev.Origins[0].Time,
			Latitude:  35,
			Longitude: -117,
			Depth:     10000,
		}},
	}
	require.NoError(t, ReadPicks(got, formats.StreamSource(&buf), DefaultReadConfig()))
	require.Len(t, got.Picks, 2)
	origin := got.Origins[0]
	require.Len(t, origin.Arrivals, 2)

	for i, want := range ev.Picks {
		pick := got.Picks[i]
		assert.InDelta(t, want.Time.Sub(ev.Origins[0].Time).Seconds(),
			pick.Time.Sub(origin.Time).Seconds(), 1e-5)
		assert.Equal(t, want.WaveformID.ID(), pick.WaveformID.ID())
		assert.Equal(t, origin.Arrivals[i].PickID, pick.ResourceID)
	}
	assert.Equal(t, "Pg", origin.Arrivals[0].Phase)
	assert.Equal(t, "Pg", got.Picks[0].PhaseHint)
	assert.InDelta(t, 0.5, origin.Arrivals[0].TimeWeight, 1e-3)
	assert.InDelta(t, 2, origin.Arrivals[1].TimeWeight, 1e-3)
}

func TestWritePicks(t *testing.T) {
	t.Run("arrival phase and weight win", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WritePicks(pickedEvent(), formats.StreamDest(&buf), DefaultWriteConfig()))

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "seedid,phase,time,weight", lines[0])
		assert.Equal(t, "GR.FUR..HHZ,Pg,1.52000,0.500", lines[1])
		assert.Equal(t, "GR.FUR..HHN,Sg,2.75000,2.000", lines[2])
	})

	t.Run("fallback to pick phase and weight one", func(t *testing.T) {
		ev := pickedEvent()
		ev.Origins[0].Arrivals = []*catalog.Arrival{
			{PickID: ev.Picks[0].ResourceID, Phase: "", TimeWeight: 0},
		}
		var buf bytes.Buffer
		require.NoError(t, WritePicks(ev, formats.StreamDest(&buf), DefaultWriteConfig()))

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		assert.Equal(t, "GR.FUR..HHZ,P,1.52000,1.000", lines[1])
		assert.Equal(t, "GR.FUR..HHN,S,2.75000,1.000", lines[2])
	})

	t.Run("no origin fails", func(t *testing.T) {
		ev := catalog.NewEvent()
		ev.ResourceID = "smi:local/event/bare1"
		err := WritePicks(ev, formats.StreamDest(&bytes.Buffer{}), DefaultWriteConfig())
		require.ErrorIs(t, err, catalog.ErrNoOrigin)
		assert.Contains(t, err.Error(), "bare1")
	})
}

func TestReadPicks(t *testing.T) {
	t.Run("no origin fails", func(t *testing.T) {
		ev := catalog.NewEvent()
		src := formats.StreamSource(strings.NewReader("seedid,phase,time,weight\n"))
		err := ReadPicks(ev, src, DefaultReadConfig())
		require.ErrorIs(t, err, catalog.ErrNoOrigin)
	})

	t.Run("replaces existing picks", func(t *testing.T) {
		ev := pickedEvent()
		src := formats.StreamSource(strings.NewReader(
			"seedid,phase,time,weight\nGR.WET..HHZ,P,0.90000,1.000\n"))
		require.NoError(t, ReadPicks(ev, src, DefaultReadConfig()))
		require.Len(t, ev.Picks, 1)
		assert.Equal(t, "GR.WET..HHZ", ev.Picks[0].WaveformID.ID())
		require.Len(t, ev.Origins[0].Arrivals, 1)
	})

	t.Run("bad offset fails", func(t *testing.T) {
		ev := pickedEvent()
		src := formats.StreamSource(strings.NewReader(
			"seedid,phase,time,weight\nGR.WET..HHZ,P,soon,1.000\n"))
		err := ReadPicks(ev, src, DefaultReadConfig())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "soon")
	})
}
