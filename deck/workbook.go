package deck

import (
	"encoding/xml"
	"fmt"

	"github.com/tsawler/lectern/opc"
)

// The embedded workbook mirrors the chart's plotted data so
// spreadsheet-aware consumers can open it: categories in column A,
// one series per column from B on, series names in row 1. It is a
// self-contained package built with the same container layer as the
// enclosing document.

const nsSpreadsheetML = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"

type wbWorkbook struct {
	XMLName xml.Name `xml:"workbook"`
	Xmlns   string   `xml:"xmlns,attr"`
	XmlnsR  string   `xml:"xmlns:r,attr"`
	Sheets  wbSheets `xml:"sheets"`
}

type wbSheets struct {
	Sheet []wbSheet `xml:"sheet"`
}

type wbSheet struct {
	Name    string `xml:"name,attr"`
	SheetID int    `xml:"sheetId,attr"`
	RID     string `xml:"r:id,attr"`
}

type wsWorksheet struct {
	XMLName   xml.Name    `xml:"worksheet"`
	Xmlns     string      `xml:"xmlns,attr"`
	SheetData wsSheetData `xml:"sheetData"`
}

type wsSheetData struct {
	Row []wsRow `xml:"row"`
}

type wsRow struct {
	R int      `xml:"r,attr"`
	C []wsCell `xml:"c"`
}

type wsCell struct {
	R  string       `xml:"r,attr"`
	T  string       `xml:"t,attr,omitempty"`
	Is *wsInlineStr `xml:"is"`
	V  string       `xml:"v,omitempty"`
}

type wsInlineStr struct {
	T string `xml:"t"`
}

func inlineStrCell(ref, text string) wsCell {
	return wsCell{R: ref, T: "inlineStr", Is: &wsInlineStr{T: text}}
}

// workbookXLSX builds the chart's workbook cache from its current
// data.
func (c *Chart) workbookXLSX() ([]byte, error) {
	var sheet wsSheetData

	header := wsRow{R: 1}
	for i, s := range c.series {
		header.C = append(header.C, inlineStrCell(fmt.Sprintf("%s1", columnName(i+1)), s.Name))
	}
	sheet.Row = append(sheet.Row, header)

	for j, label := range c.categories {
		row := wsRow{R: j + 2}
		row.C = append(row.C, inlineStrCell(fmt.Sprintf("A%d", j+2), label))
		for i, s := range c.series {
			if j >= len(s.Values) {
				continue
			}
			row.C = append(row.C, wsCell{
				R: fmt.Sprintf("%s%d", columnName(i+1), j+2),
				V: formatFloat(s.Values[j]),
			})
		}
		sheet.Row = append(sheet.Row, row)
	}

	wsBytes, err := marshalPart(wsWorksheet{Xmlns: nsSpreadsheetML, SheetData: sheet})
	if err != nil {
		return nil, err
	}

	pkg := opc.NewPackage()
	if _, err := pkg.AddPart("/xl/worksheets/sheet1.xml", opc.ContentTypeWorksheet, wsBytes); err != nil {
		return nil, err
	}

	wb, err := pkg.AddPart("/xl/workbook.xml", opc.ContentTypeWorkbookMain, nil)
	if err != nil {
		return nil, err
	}
	sheetRel := wb.Relationships().Add(opc.RelTypeWorksheet, "worksheets/sheet1.xml")
	wbBytes, err := marshalPart(wbWorkbook{
		Xmlns:  nsSpreadsheetML,
		XmlnsR: nsRelationships,
		Sheets: wbSheets{Sheet: []wbSheet{{Name: "Sheet1", SheetID: 1, RID: sheetRel.ID}}},
	})
	if err != nil {
		return nil, err
	}
	wb.SetData(wbBytes)

	pkg.Relationships().Add(opc.RelTypeOfficeDocument, "xl/workbook.xml")
	return pkg.Bytes()
}
