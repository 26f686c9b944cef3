package catalog

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteASCII emits a '#'-prefixed, tab-aligned text table: one header
// line naming each column, one header line giving its unit, then one
// line per row. Alignment is handled by text/tabwriter rather than
// hand-rolled field widths.
func WriteASCII(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	names := make([]string, len(Columns))
	units := make([]string, len(Columns))
	for i, c := range Columns {
		names[i] = c.Name
		units[i] = c.Unit
	}
	fmt.Fprintf(tw, "# %s\n", strings.Join(names, "\t"))
	fmt.Fprintf(tw, "# %s\n", strings.Join(units, "\t"))
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%.6e\t%.6e\t%.6e\t%.3f\t%.3f\t%.3f\t%.3f\t%d\n",
			r.ID, r.NPix,
			r.XMin, r.XMax, r.YMin, r.YMax, r.ZMin, r.ZMax,
			r.FMin, r.FMax, r.FSum,
			r.XCentroid, r.YCentroid, r.ZCentroid,
			r.Rel, r.Flags,
		)
	}
	return tw.Flush()
}

// votable mirrors the minimal subset of the VOTable 1.4 schema this
// catalogue needs: a single resource, a single table, one FIELD per
// Column, and TABLEDATA rows.
type votable struct {
	XMLName  xml.Name     `xml:"VOTABLE"`
	Version  string       `xml:"version,attr"`
	Resource voResource   `xml:"RESOURCE"`
}

type voResource struct {
	Table voTable `xml:"TABLE"`
}

type voTable struct {
	Fields    []voField `xml:"FIELD"`
	Data      voData    `xml:"DATA"`
}

type voField struct {
	Name string `xml:"name,attr"`
	Unit string `xml:"unit,attr,omitempty"`
	Desc string `xml:"DESCRIPTION"`
}

type voData struct {
	TableData voTableData `xml:"TABLEDATA"`
}

type voTableData struct {
	Rows []voRow `xml:"TR"`
}

type voRow struct {
	Cells []string `xml:"TD"`
}

// WriteVOTable emits the catalogue as a minimal VOTable-1.4 XML
// document, per spec.md §6's "VOTable" catalogue emission format.
func WriteVOTable(w io.Writer, rows []Row) error {
	doc := votable{Version: "1.4"}
	for _, c := range Columns {
		doc.Resource.Table.Fields = append(doc.Resource.Table.Fields, voField{
			Name: c.Name,
			Unit: c.Unit,
			Desc: c.Description,
		})
	}
	for _, r := range rows {
		doc.Resource.Table.Data.TableData.Rows = append(doc.Resource.Table.Data.TableData.Rows, voRow{
			Cells: []string{
				fmt.Sprintf("%d", r.ID),
				fmt.Sprintf("%d", r.NPix),
				fmt.Sprintf("%d", r.XMin), fmt.Sprintf("%d", r.XMax),
				fmt.Sprintf("%d", r.YMin), fmt.Sprintf("%d", r.YMax),
				fmt.Sprintf("%d", r.ZMin), fmt.Sprintf("%d", r.ZMax),
				fmt.Sprintf("%.6e", r.FMin), fmt.Sprintf("%.6e", r.FMax), fmt.Sprintf("%.6e", r.FSum),
				fmt.Sprintf("%.3f", r.XCentroid), fmt.Sprintf("%.3f", r.YCentroid), fmt.Sprintf("%.3f", r.ZCentroid),
				fmt.Sprintf("%.3f", r.Rel),
				fmt.Sprintf("%d", r.Flags),
			},
		})
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := w.Write([]byte("\n"))
	return err
}
