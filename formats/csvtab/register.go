package csvtab

import (
	"github.com/seistools/catform/catalog"
	"github.com/seistools/catform/formats"
)

func init() {
	formats.Register(formats.Format{
		Name:  "CSV",
		Sniff: Sniff,
		Read: func(src formats.Source) (*catalog.Catalog, error) {
			return Read(src, DefaultReadConfig())
		},
		Write: func(cat *catalog.Catalog, dst formats.Dest) error {
			return Write(cat, dst, DefaultWriteConfig())
		},
	})
}
