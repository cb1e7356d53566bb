package csz

import (
	"archive/zip"
	"bytes"
	"io"
	"os"

	"github.com/seistools/catform/formats"
)

// Sniff reports whether the source is a CSZ bundle: a valid zip archive whose
// comment carries the CSZ tag. Plain CSV files and untagged zip archives are
// NoMatch; sources that cannot be opened at all are Inconclusive.
func Sniff(src formats.Source) formats.Result {
	if path, ok := src.Path(); ok {
		f, err := os.Open(path)
		if err != nil {
			return formats.Inconclusive
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return formats.Inconclusive
		}
		return sniffZip(f, info.Size())
	}

	rc, err := src.Open()
	if err != nil {
		return formats.Inconclusive
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return formats.Inconclusive
	}
	return sniffZip(bytes.NewReader(data), int64(len(data)))
}

func sniffZip(r io.ReaderAt, size int64) formats.Result {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return formats.NoMatch
	}
	if !taggedComment(zr.Comment) {
		return formats.NoMatch
	}
	return formats.Match
}
