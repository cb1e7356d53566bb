package csvtab

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/seistools/catform/catalog"
	"github.com/seistools/catform/fieldfmt"
	"github.com/seistools/catform/formats"
)

// ReadPicks decodes a per-event pick table into the event, replacing its
// pick list and its resolved origin's arrival list. Pick times in the table
// are fractional seconds relative to the origin time; absolute times are
// reconstructed here. The event must carry a resolvable origin.
func ReadPicks(ev *catalog.Event, src formats.Source, cfg ReadConfig) error {
	origin, err := ev.ResolveOrigin()
	if err != nil {
		return fmt.Errorf("attach picks to event %s: %w", ev.ResourceID.ShortID(), err)
	}

	rc, err := src.Open()
	if err != nil {
		return fmt.Errorf("open pick table: %w", err)
	}
	defer rc.Close()

	cfg = cfg.withDefaults()
	cfg.Names = nil // pick tables always carry their own header
	rows, err := newRowScanner(rc, cfg)
	if err != nil {
		return err
	}

	var picks []*catalog.Pick
	var arrivals []*catalog.Arrival
	for {
		row, err := rows.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		offset, err := strconv.ParseFloat(strings.TrimSpace(row["time"]), 64)
		if err != nil {
			return fmt.Errorf("parse pick time offset %q: %w", row["time"], err)
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(row["weight"]), 64)
		if err != nil {
			return fmt.Errorf("parse pick weight %q: %w", row["weight"], err)
		}
		pick := &catalog.Pick{
			ResourceID: catalog.NewResourceID("pick"),
			Time:       origin.Time.Add(secondsToDuration(offset)),
			WaveformID: catalog.ParseWaveformStreamID(row["seedid"]),
			PhaseHint:  row["phase"],
		}
		picks = append(picks, pick)
		arrivals = append(arrivals, &catalog.Arrival{
			PickID:     pick.ResourceID,
			Phase:      row["phase"],
			TimeWeight: weight,
		})
	}

	ev.Picks = picks
	origin.Arrivals = arrivals
	cfg.Metrics.AddPicksRead(len(picks))
	return nil
}

// WritePicks encodes the event's picks as a table of (seedid, phase,
// time-offset, weight) rows relative to the resolved origin. Arrivals supply
// the phase and weight where set; otherwise the pick's own phase hint and a
// weight of 1.0 are used.
func WritePicks(ev *catalog.Event, dst formats.Dest, cfg WriteConfig) error {
	origin, err := ev.ResolveOrigin()
	if err != nil {
		return fmt.Errorf("write picks for event %s: %w", ev.ResourceID.ShortID(), err)
	}

	cfg = cfg.withDefaults()
	tmpl, err := resolveTemplate(pickPresets, cfg)
	if err != nil {
		return err
	}

	// Zero weights and empty phases are left out so such picks fall through
	// to the defaults below.
	weights := make(map[catalog.ResourceID]float64, len(origin.Arrivals))
	phases := make(map[catalog.ResourceID]string, len(origin.Arrivals))
	for _, a := range origin.Arrivals {
		if a.TimeWeight != 0 {
			weights[a.PickID] = a.TimeWeight
		}
		if a.Phase != "" {
			phases[a.PickID] = a.Phase
		}
	}

	wc, err := dst.Create()
	if err != nil {
		return fmt.Errorf("create pick table: %w", err)
	}
	defer wc.Close()

	bw := bufio.NewWriter(wc)
	bw.WriteString(tmpl.Header())
	bw.WriteByte('\n')
	for _, pick := range ev.Picks {
		phase := pick.PhaseHint
		if p, ok := phases[pick.ResourceID]; ok {
			phase = p
		}
		weight := 1.0
		if w, ok := weights[pick.ResourceID]; ok {
			weight = w
		}
		rec := fieldfmt.Record{
			"seedid": pick.WaveformID.ID(),
			"phase":  phase,
			"time":   pick.Time.Sub(origin.Time).Seconds(),
			"weight": weight,
		}
		line, err := tmpl.Render(rec)
		if err != nil {
			return fmt.Errorf("format pick %s: %w", pick.WaveformID.ID(), err)
		}
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	cfg.Metrics.AddPicksWritten(len(ev.Picks))

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write pick table: %w", err)
	}
	return nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
