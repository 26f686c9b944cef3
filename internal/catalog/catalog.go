// Package catalog realises spec.md §6's "Catalogue emission"
// collaborator: a typed, columnar downstream projection of the
// linker's object table, with per-column unit and semantic descriptor
// strings, emitted in ASCII-table, VOTable-XML, or (via the sqlcat
// subpackage) SQL-INSERT form.
package catalog

import (
	"github.com/banshee-data/sofind/internal/linker"
)

// Column describes one catalogue field: its name, physical unit, and
// a one-line semantic descriptor, per spec.md §6 "typed columns with
// per-column unit string and a semantic descriptor string".
type Column struct {
	Name        string
	Unit        string
	Description string
}

// Columns is the fixed projection of linker.ObjectParams emitted by
// every catalogue writer.
var Columns = []Column{
	{Name: "id", Unit: "", Description: "object label"},
	{Name: "n_pix", Unit: "pix", Description: "number of voxels in the object"},
	{Name: "x_min", Unit: "pix", Description: "bounding box minimum x"},
	{Name: "x_max", Unit: "pix", Description: "bounding box maximum x"},
	{Name: "y_min", Unit: "pix", Description: "bounding box minimum y"},
	{Name: "y_max", Unit: "pix", Description: "bounding box maximum y"},
	{Name: "z_min", Unit: "pix", Description: "bounding box minimum z"},
	{Name: "z_max", Unit: "pix", Description: "bounding box maximum z"},
	{Name: "f_min", Unit: "", Description: "minimum flux, normalised by global RMS"},
	{Name: "f_max", Unit: "", Description: "maximum flux, normalised by global RMS"},
	{Name: "f_sum", Unit: "", Description: "integrated flux, normalised by global RMS"},
	{Name: "x_centroid", Unit: "pix", Description: "flux-weighted centroid x"},
	{Name: "y_centroid", Unit: "pix", Description: "flux-weighted centroid y"},
	{Name: "z_centroid", Unit: "pix", Description: "flux-weighted centroid z"},
	{Name: "rel", Unit: "", Description: "reliability score in [0, 1]"},
	{Name: "flags", Unit: "", Description: "8-bit flag byte (see object parameter record)"},
}

// Row is one catalogue record projected from an ObjectParams.
type Row struct {
	ID                     int32
	NPix                   int64
	XMin, XMax             int
	YMin, YMax             int
	ZMin, ZMax             int
	FMin, FMax, FSum       float64
	XCentroid, YCentroid, ZCentroid float64
	Rel                    float64
	Flags                  uint8
}

// Project converts the linker's object table into catalogue rows.
func Project(objects []*linker.ObjectParams) []Row {
	rows := make([]Row, len(objects))
	for i, o := range objects {
		c := o.Centroid()
		rows[i] = Row{
			ID:        o.Label,
			NPix:      o.NPix,
			XMin:      o.XMin, XMax: o.XMax,
			YMin: o.YMin, YMax: o.YMax,
			ZMin: o.ZMin, ZMax: o.ZMax,
			FMin: o.FMin, FMax: o.FMax, FSum: o.FSum,
			XCentroid: c[0], YCentroid: c[1], ZCentroid: c[2],
			Rel:   o.Rel,
			Flags: o.Flags,
		}
	}
	return rows
}
