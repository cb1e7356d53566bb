package csz

import (
	"github.com/seistools/catform/catalog"
	"github.com/seistools/catform/formats"
)

func init() {
	formats.Register(formats.Format{
		Name:  "CSZ",
		Sniff: Sniff,
		Read: func(src formats.Source) (*catalog.Catalog, error) {
			return Read(src, ReadConfig{})
		},
		Write: func(cat *catalog.Catalog, dst formats.Dest) error {
			return Write(cat, dst, WriteConfig{})
		},
	})
}
