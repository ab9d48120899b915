package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nxtsync/config"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// CertificateData carries the fields rendered onto a certificate.
type CertificateData struct {
	StudentName      string
	CourseName       string
	Duration         string
	Date             time.Time
	CertificateID    string
	VerificationCode string
}

// NewCertificateID allocates a public certificate identifier from the
// current timestamp, e.g. CERT-1712345678901.
func NewCertificateID() string {
	return fmt.Sprintf("CERT-%d", time.Now().UnixMilli())
}

// GenerateCertificate renders the certificate PDF and writes it under the
// public certificates directory. It returns the URL path the file is
// served at. A QR encoding failure degrades to a placeholder box; only
// filesystem errors abort issuance.
func GenerateCertificate(data CertificateData) (string, error) {
	if err := os.MkdirAll(config.AppConfig.CertificateDir, 0755); err != nil {
		return "", err
	}

	// Landscape A4: 297 x 210 mm
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// Sidebar
	pdf.SetFillColor(26, 35, 126) // dark blue
	pdf.Rect(0, 0, 92, 210, "F")

	pdf.SetFillColor(255, 255, 255)
	pdf.RoundedRect(12, 18, 68, 42, 3, "1234", "F")
	pdf.SetTextColor(26, 35, 126)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(22, 43, "NXTSYNC")

	marginLeft := 106.0

	// ISO pill
	pdf.SetFillColor(241, 245, 249)
	pdf.RoundedRect(marginLeft, 20, 58, 9, 1.5, "1234", "F")
	pdf.SetTextColor(100, 116, 139)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(marginLeft+8, 26, "An ISO Certified Company")

	// Main heading
	pdf.SetTextColor(30, 41, 59)
	pdf.SetFont("Helvetica", "B", 36)
	pdf.Text(marginLeft, 58, "Certificate of")
	pdf.Text(marginLeft, 73, "Completion")

	pdf.SetTextColor(100, 116, 139)
	pdf.SetFont("Helvetica", "", 14)
	pdf.Text(marginLeft, 90, "This is to certify that")

	// Student name
	pdf.SetTextColor(15, 23, 42)
	pdf.SetFont("Times", "B", 28)
	pdf.Text(marginLeft, 103, strings.ToUpper(data.StudentName))

	pdf.SetTextColor(100, 116, 139)
	pdf.SetFont("Helvetica", "", 14)
	pdf.Text(marginLeft, 118, "has successfully completed all the modules of")

	// Course name
	pdf.SetTextColor(15, 23, 42)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(marginLeft, 129, data.CourseName)

	// Issue date
	pdf.SetTextColor(100, 116, 139)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(marginLeft, 145, fmt.Sprintf("Issued on %s", data.Date.Format("2006-01-02")))

	// Signatory block
	footerY := 177.0
	pdf.SetDrawColor(15, 23, 42)
	pdf.SetLineWidth(0.4)
	pdf.Line(marginLeft, footerY, marginLeft+70, footerY)
	pdf.SetTextColor(15, 23, 42)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(marginLeft, footerY+7, "Authorized Signatory")
	pdf.SetTextColor(100, 116, 139)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(marginLeft, footerY+13, "NXTSYNC Academy")

	// QR code encoding the public verification URL
	qrX, qrY, qrSize := 250.0, 162.0, 32.0
	verifyURL := fmt.Sprintf("%s/certificate/verify/%s", config.AppConfig.BaseURL, data.CertificateID)

	png, err := qrcode.Encode(verifyURL, qrcode.High, 256)
	if err != nil {
		// Fallback box if QR generation fails; the PDF is still produced.
		log.Printf("QR generation error for %s: %v", data.CertificateID, err)
		pdf.SetDrawColor(0, 0, 0)
		pdf.Rect(qrX, qrY, qrSize, qrSize, "D")
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(15, 23, 42)
		pdf.Text(qrX+6, qrY+qrSize/2, "QR Error")
	} else {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("verify-qr", opts, bytes.NewReader(png))
		pdf.ImageOptions("verify-qr", qrX, qrY, qrSize, qrSize, false, opts, 0, "")
		pdf.SetDrawColor(0, 0, 0)
		pdf.Rect(qrX, qrY, qrSize, qrSize, "D")
	}

	fileName := fmt.Sprintf("CERT-%s.pdf", data.CertificateID)
	filePath := filepath.Join(config.AppConfig.CertificateDir, fileName)

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}

	return "/certificates/" + fileName, nil
}

// CertificateFilePath resolves a served certificate URL back to the file
// on disk, for email attachments.
func CertificateFilePath(certificateURL string) string {
	return filepath.Join(config.AppConfig.CertificateDir, filepath.Base(certificateURL))
}
