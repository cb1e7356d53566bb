// Package csvtab reads and writes earthquake catalogs as delimited tables.
//
// The canonical layout is one header line plus one data line per event:
//
//	time,lat,lon,dep,mag,magtype,id
//	2024-04-26T12:00:00.50000,35.024100,-117.221800,10.000,3.25,Ml,evt001
//
// Reading also handles foreign tables: the caller may skip leading lines,
// rename columns (using "_" for positions to ignore), and change the
// delimiter or quote character of the underlying row parser. Depth is a
// kilometer column by default and is stored in meters on the catalog side.
//
// The per-event pick tables bundled inside CSZ archives use the same
// machinery; see ReadPicks and WritePicks. Pick times are encoded as
// fractional seconds relative to the parent origin time.
package csvtab
