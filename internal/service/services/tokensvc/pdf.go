package tokensvc

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// buildTokenPDF lays out the guest letter: a heading, the QR code centered
// on the page and a short instruction line.
func buildTokenPDF(qrPNG []byte) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 14, "Breakfast at the Inn", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "Scan the code below with your phone to order breakfast.", "", 1, "C", false, 0, "")

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))

	pageWidth, _ := pdf.GetPageSize()
	const qrWidthMM = 100.0
	pdf.ImageOptions("qr", (pageWidth-qrWidthMM)/2, 50, qrWidthMM, qrWidthMM, false, opts, 0, "")

	pdf.SetY(160)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 6, "The code is valid for your stay. Orders close the evening before delivery.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	return buf.Bytes(), nil
}
