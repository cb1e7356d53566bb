package csvtab

import (
	"bufio"
	"fmt"
	"io"

	"github.com/seistools/catform/catalog"
	"github.com/seistools/catform/formats"
)

// Write encodes a catalog as a header line plus one data line per event.
// Events without a resolvable origin are skipped with a warning; events
// without a magnitude are written with empty magnitude columns.
func Write(cat *catalog.Catalog, dst formats.Dest, cfg WriteConfig) error {
	wc, err := dst.Create()
	if err != nil {
		return fmt.Errorf("create catalog destination: %w", err)
	}
	if err := writeTo(cat, wc, cfg); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}

func writeTo(cat *catalog.Catalog, w io.Writer, cfg WriteConfig) error {
	cfg = cfg.withDefaults()
	tmpl, err := resolveTemplate(eventPresets, cfg)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(tmpl.Header())
	bw.WriteByte('\n')

	written := 0
	for _, ev := range cat.Events {
		rec, ok := rowFromEvent(ev, cfg)
		if !ok {
			continue
		}
		line, err := tmpl.Render(rec)
		if err != nil {
			return fmt.Errorf("format event %s: %w", ev.ResourceID.ShortID(), err)
		}
		bw.WriteString(line)
		bw.WriteByte('\n')
		written++
	}
	cfg.Metrics.AddEventsWritten(written)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write catalog table: %w", err)
	}
	return nil
}
