package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"homehero/internal/models"
)

const (
	msgInvalidBookingID = "Invalid booking id"
	xlsxContentType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	opCreateBooking  = operation{name: "create_booking", failed: "Failed to create booking"}
	opListBookings   = operation{name: "list_bookings", failed: "Failed to fetch bookings"}
	opExportBookings = operation{name: "export_bookings", failed: "Failed to export bookings"}
	opGetBooking     = operation{name: "get_booking", failed: "Failed to get booking", notFound: "Booking not found", badID: msgInvalidBookingID}
	opUpdateBooking  = operation{name: "update_booking", failed: "Failed to update booking", badID: msgInvalidBookingID}
	opDeleteBooking  = operation{name: "delete_booking", failed: "Failed to delete booking", notFound: "Booking not found", badID: msgInvalidBookingID}
)

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req models.NewBookingRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res, err := s.deps.Bookings.CreateBooking(r.Context(), req)
	if err != nil {
		s.fail(w, r, opCreateBooking, err)
		return
	}
	writeData(w, "Booking created successfully", res)
}

// handleListBookings accepts an optional ?email= filter.
func (s *HTTPServer) handleListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.deps.Bookings.ListBookings(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		s.fail(w, r, opListBookings, err)
		return
	}
	writeData(w, "", bookings)
}

func (s *HTTPServer) handleExportBookings(w http.ResponseWriter, r *http.Request) {
	data, err := s.deps.Bookings.ExportBookings(r.Context())
	if err != nil {
		s.fail(w, r, opExportBookings, err)
		return
	}

	filename := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := s.deps.Bookings.GetBooking(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, opGetBooking, err)
		return
	}
	writeData(w, "", booking)
}

func (s *HTTPServer) handleUpdateBooking(w http.ResponseWriter, r *http.Request) {
	var patch models.BookingPatch
	if err := decodeBody(r, &patch); err != nil {
		writeFailure(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res, err := s.deps.Bookings.UpdateBooking(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		s.fail(w, r, opUpdateBooking, err)
		return
	}
	writeData(w, "Booking updated successfully", res)
}

func (s *HTTPServer) handleDeleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Bookings.DeleteBooking(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, opDeleteBooking, err)
		return
	}
	writeMessage(w, http.StatusOK, "Booking deleted successfully")
}
