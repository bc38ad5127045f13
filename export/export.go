package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"todo/tasks"
)

// Formats lists the supported export formats
var Formats = []string{"json", "csv", "pdf"}

// Write renders list in the given format
func Write(w io.Writer, format string, list []tasks.Task) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if list == nil {
			list = []tasks.Task{}
		}
		return enc.Encode(list)
	case "csv":
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"id", "text", "done"})
		for _, t := range list {
			_ = cw.Write([]string{t.ID, t.Text, strconv.FormatBool(t.Done)})
		}
		cw.Flush()
		return cw.Error()
	case "pdf":
		return writePDF(w, list)
	default:
		return fmt.Errorf("unknown format %s", format)
	}
}

func writePDF(w io.Writer, list []tasks.Task) error {
	remaining := 0
	for _, t := range list {
		if !t.Done {
			remaining++
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Todo List")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 6, fmt.Sprintf("%d remaining, %d total", remaining, len(list)))
	pdf.Ln(10)

	if len(list) == 0 {
		pdf.Cell(40, 6, "No tasks yet")
	}
	for _, t := range list {
		box := "[ ]"
		if t.Done {
			box = "[x]"
		}
		pdf.MultiCell(0, 6, tr(box+" "+t.Text), "0", "L", false)
	}

	return pdf.Output(w)
}
