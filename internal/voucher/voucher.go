package voucher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/ololchike/test-app--sub000/internal/booking"
)

// Uploader stores a rendered voucher and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

type Issuer struct {
	uploader Uploader
}

func NewIssuer(uploader Uploader) *Issuer {
	return &Issuer{uploader: uploader}
}

func Key(bookingID string) string {
	return "vouchers/" + bookingID + ".pdf"
}

// Issue renders the voucher for b and uploads it.
func (i *Issuer) Issue(ctx context.Context, b *booking.Booking) (string, error) {
	pdf, err := Render(b)
	if err != nil {
		return "", err
	}

	url, err := i.uploader.Upload(ctx, Key(b.ID), "application/pdf", bytes.NewReader(pdf))
	if err != nil {
		return "", fmt.Errorf("upload voucher: %w", err)
	}

	log.Printf("[VOUCHER] issued booking=%s ref=%s", b.ID, b.Reference)
	return url, nil
}

// Render draws a one-page A4 voucher. The QR code carries the booking
// reference for check-in.
func Render(b *booking.Booking) ([]byte, error) {
	qrPNG, err := qrcode.Encode(fmt.Sprintf("%s|%s", b.Reference, b.ID), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("qr code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "Safari Booking Voucher")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(45, 8, label)
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(0, 8, tr(value))
		pdf.Ln(8)
	}

	line("Reference:", b.Reference)
	line("Tour:", b.TourTitle)
	line("Start date:", b.Selection.StartDate)
	line("Lead traveler:", b.Contact.FirstName+" "+b.Contact.LastName)
	line("Guests:", fmt.Sprintf("%d adults, %d children, %d infants",
		b.Selection.Adults, b.Selection.Children, b.Selection.Infants))
	line("Status:", string(b.Status))
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Itinerary stays")
	pdf.Ln(9)
	pdf.SetFont("Arial", "", 11)
	for _, acc := range b.Pricing.AccommodationLines {
		pdf.Cell(0, 7, tr(fmt.Sprintf("Night %d: %s", acc.Day, acc.Name)))
		pdf.Ln(7)
	}
	for _, addon := range b.Pricing.AddonLines {
		pdf.Cell(0, 7, tr("Extra: "+addon.Name))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	cur := b.Pricing.Currency
	line("Total:", fmt.Sprintf("%s %d", cur, b.Pricing.Total))
	line("Paid:", fmt.Sprintf("%s %d", cur, b.AmountPaid))
	line("Outstanding:", fmt.Sprintf("%s %d", cur, b.Outstanding()))

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 25, 45, 45, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render voucher: %w", err)
	}
	return buf.Bytes(), nil
}
