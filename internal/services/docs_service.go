package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	intdb "charter/internal/db"
	"charter/internal/domain/models"
	"charter/internal/repositories"
	"charter/internal/utils"
)

// DocsService renders the printable booking slip for the back office.
type DocsService struct {
	DB        intdb.DBTX
	RequestID string
	Loader    func(ctx context.Context, bookingID int64) (models.BookingDetail, error)
	Now       func() time.Time
}

func (s DocsService) load(ctx context.Context, bookingID int64) (models.BookingDetail, error) {
	if s.Loader != nil {
		return s.Loader(ctx, bookingID)
	}
	b, err := repositories.BookingRepo{DB: s.DB}.GetDetail(ctx, bookingID)
	if err != nil {
		return models.BookingDetail{}, lookupError("booking", "id", err)
	}
	return b, nil
}

// GenerateBookingSlip returns the PDF bytes and a download filename.
func (s DocsService) GenerateBookingSlip(ctx context.Context, bookingID int64) ([]byte, string, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	utils.LogEvent(s.RequestID, "docs", "booking_slip", fmt.Sprintf("booking_id=%d", bookingID))
	return buildBookingSlipPDF(b, now)
}

func buildBookingSlipPDF(b models.BookingDetail, printedAt time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Slip", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING SLIP")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Booking #%d    Status: %s    Printed: %s",
		b.ID, utils.Safe(b.Status, "-"), utils.FormatDateTime(printedAt)))
	pdf.Ln(10)

	section := func(title string, lines []string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, l := range lines {
			pdf.Cell(0, 6, l)
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	section("Customer", []string{
		fmt.Sprintf("Name        : %s", utils.Safe(b.CustomerName(), "-")),
		fmt.Sprintf("Email       : %s", utils.Safe(b.Email, "-")),
		fmt.Sprintf("Phone       : %s", utils.Safe(utils.Deref(b.PhoneNo), "-")),
		fmt.Sprintf("Country     : %s", utils.Safe(utils.Deref(b.Country), "-")),
	})

	returnTrip := "No"
	if b.IsReturnTrip {
		returnTrip = "Yes"
	}
	section("Trip", []string{
		fmt.Sprintf("Destination : %s", utils.Safe(utils.Deref(b.DestinationName), notSpecified)),
		fmt.Sprintf("Vehicle     : %s", utils.Safe(b.VehicleLabel(), notSpecified)),
		fmt.Sprintf("Passengers  : %d", b.NoOfPassengers),
		fmt.Sprintf("Pickup      : %s %s", utils.Safe(b.PickupDate, "-"), utils.Safe(b.PickupTime, "-")),
		fmt.Sprintf("From        : %s", utils.Safe(b.PickupLocation, "-")),
		fmt.Sprintf("To          : %s", utils.Safe(b.DropoffLocation, "-")),
		fmt.Sprintf("Return trip : %s", returnTrip),
	})

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Price: "+utils.FormatMoneyOr(b.Price, notSpecified))
	pdf.Ln(12)

	if info := utils.Safe(b.AdditionalInfo, ""); info != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Notes: "+info, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("BOOKING_%d_%s.pdf", b.ID, utils.SafeFilenamePart(b.CustomerName()))
	return buf.Bytes(), filename, nil
}
