package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amir01mn/parking-space-reservation/internal/booking"
	"github.com/amir01mn/parking-space-reservation/internal/model"
	"github.com/amir01mn/parking-space-reservation/internal/store"
)

// BookingHandler exposes the booking lifecycle over HTTP.  The lifecycle
// core swallows most anomalies and only logs them, so this layer re-checks
// the aggregate after each operation and translates "nothing changed" into
// a visible error response.
type BookingHandler struct {
	Svc      *booking.Service
	Overlaps *booking.OverlapIndex
}

// NewBookingHandler constructs a BookingHandler.  Both dependencies must be
// non-nil.
func NewBookingHandler(svc *booking.Service, overlaps *booking.OverlapIndex) *BookingHandler {
	if svc == nil || overlaps == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Svc: svc, Overlaps: overlaps}
}

// bookingView is the JSON shape of a booking in responses.
type bookingView struct {
	ID            string  `json:"id"`
	UserID        int     `json:"user_id"`
	SpotID        int     `json:"spot_id"`
	LotID         int     `json:"lot_id"`
	Plate         string  `json:"plate"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	BookingStatus string  `json:"booking_status"`
	PaymentStatus string  `json:"payment_status"`
	DepositAmount float64 `json:"deposit_amount"`
	TotalAmount   float64 `json:"total_amount"`
}

func viewOf(b *model.Booking) bookingView {
	return bookingView{
		ID:            b.ID,
		UserID:        b.UserID,
		SpotID:        b.SpotID,
		LotID:         b.LotID,
		Plate:         b.Plate,
		Start:         model.FormatClock(b.Start),
		End:           model.FormatClock(b.End),
		BookingStatus: b.BookingStatus,
		PaymentStatus: b.PaymentStatus,
		DepositAmount: b.DepositAmount,
		TotalAmount:   b.TotalAmount,
	}
}

// Create handles POST /v1/bookings.  The body carries the reservation
// fields with HH:mm times; total_amount is optional and is priced from the
// window when omitted.  Responds 201 with the saved booking, 400 on
// validation problems and 409 when the minted ID already exists in the
// store.
func (h *BookingHandler) Create(c echo.Context) error {
	var body struct {
		UserID      int     `json:"user_id"`
		SpotID      int     `json:"spot_id"`
		LotID       int     `json:"lot_id"`
		Plate       string  `json:"plate"`
		Start       string  `json:"start"`
		End         string  `json:"end"`
		TotalAmount float64 `json:"total_amount"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	req := booking.CreateRequest{
		UserID:      body.UserID,
		SpotID:      body.SpotID,
		LotID:       body.LotID,
		Plate:       body.Plate,
		TotalAmount: body.TotalAmount,
	}
	if body.Start != "" {
		start, err := model.ParseClock(body.Start)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start time"})
		}
		req.Start = start
	}
	if body.End != "" {
		end, err := model.ParseClock(body.End)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end time"})
		}
		req.End = end
	}

	ctx := c.Request().Context()
	b, err := h.Svc.Create(ctx, req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Svc.Save(ctx, b); err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		case errors.Is(err, store.ErrValidation):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save booking"})
		}
	}
	return c.JSON(http.StatusCreated, viewOf(b))
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	b, err := h.Svc.FindByID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	return c.JSON(http.StatusOK, viewOf(b))
}

// Overlapping handles GET /v1/bookings/overlapping?start=HH:mm&end=HH:mm.
// Bookings touching the query boundary count as overlapping.
func (h *BookingHandler) Overlapping(c echo.Context) error {
	qs, err := model.ParseClock(c.QueryParam("start"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start time"})
	}
	qe, err := model.ParseClock(c.QueryParam("end"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end time"})
	}

	matches := h.Overlaps.Overlapping(qs, qe)
	views := make([]bookingView, 0, len(matches))
	for _, b := range matches {
		views = append(views, viewOf(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": views})
}

// LastID handles GET /v1/bookings/last-id, reporting the most recent
// booking ID allocated by this process.
func (h *BookingHandler) LastID(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"last_id": h.Svc.LastAllocatedID()})
}

// PayDeposit handles POST /v1/bookings/:id/deposit.  The core leaves the
// booking untouched on any failure, so the resulting payment status decides
// the response: Paid means success, anything else is reported as a failed
// deposit.
func (h *BookingHandler) PayDeposit(c echo.Context) error {
	b, err := h.Svc.FindByID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	var body struct {
		UserID int    `json:"user_id"`
		Method string `json:"method"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.UserID == 0 {
		body.UserID = b.UserID
	}
	if body.Method == "" {
		body.Method = "Credit Card"
	}

	h.Svc.PayDeposit(c.Request().Context(), b, body.UserID, body.Method)
	if b.PaymentStatus != model.PaymentPaid {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "deposit payment failed"})
	}
	return c.JSON(http.StatusOK, viewOf(b))
}

// Extend handles POST /v1/bookings/:id/extend.  A new end that is not
// strictly later than the current end changes nothing and is reported as
// 422.
func (h *BookingHandler) Extend(c echo.Context) error {
	b, err := h.Svc.FindByID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	var body struct {
		NewEnd string `json:"new_end"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	newEnd, err := model.ParseClock(body.NewEnd)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid new end time"})
	}

	before := b.End
	h.Svc.Extend(c.Request().Context(), b, newEnd)
	if b.End.Equal(before) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "new end time must be later than the current end time"})
	}
	return c.JSON(http.StatusOK, viewOf(b))
}

// Cancel handles POST /v1/bookings/:id/cancel.  Cancellation never fails.
func (h *BookingHandler) Cancel(c echo.Context) error {
	b, err := h.Svc.FindByID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	h.Svc.Cancel(c.Request().Context(), b)
	return c.JSON(http.StatusOK, viewOf(b))
}

// Checkout handles POST /v1/bookings/:id/checkout.  The core only settles a
// booking that has ended and is Paid; when it declines, the payment status
// is unchanged and that is reported as 422.  Re-checking an already settled
// booking is answered 200 without charging again.
func (h *BookingHandler) Checkout(c echo.Context) error {
	b, err := h.Svc.FindByID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	if b.PaymentStatus == model.PaymentCompleted {
		return c.JSON(http.StatusOK, echo.Map{"status": "already settled", "booking": viewOf(b)})
	}

	h.Svc.Checkout(c.Request().Context(), b)
	if b.PaymentStatus != model.PaymentCompleted {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "checkout not allowed: booking must be ended and deposit paid"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "settled", "booking": viewOf(b)})
}
