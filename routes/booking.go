package routes

import (
	"errors"
	"time"

	"chef-booking-server/services"
	"chef-booking-server/storage"
	"chef-booking-server/utils"

	"github.com/kataras/iris/v12"
)

// CreateBooking - POST /api/bookings/chef/{chefID}
func CreateBooking(ctx iris.Context) {
	actor, ok := utils.CurrentActor(ctx)
	if !ok {
		ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"message": "User not authenticated"})
		return
	}

	chefID := ctx.Params().GetUintDefault("chefID", 0)
	if chefID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid chef ID.", ctx)
		return
	}

	var request CreateBookingRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	date, err := time.Parse("2006-01-02", request.Date)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid date format, expected YYYY-MM-DD.", ctx)
		return
	}

	booking, err := services.NewBookingService(storage.DB).Create(actor, chefID, date, request.Time, request.Person)
	if err != nil {
		respondBookingError(ctx, err)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"success": true,
		"message": "Booking request submitted successfully.",
		"data":    booking,
	})
}

// GetDashboard - GET /api/bookings/dashboard
// Returns the caller's bookings partitioned into upcoming and past, both as
// customer and (when they have a chef profile) as chef.
func GetDashboard(ctx iris.Context) {
	actor, ok := utils.CurrentActor(ctx)
	if !ok {
		ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"message": "User not authenticated"})
		return
	}

	dashboard, err := services.NewBookingService(storage.DB).LoadDashboard(actor)
	if err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "server_error", "could not load dashboard")
		return
	}

	ctx.JSON(iris.Map{"data": dashboard})
}

// UpdateBookingStatus - PATCH /api/bookings/{id}/status {"status": "Accepted"}
// Chef-owner only; Pending -> Accepted | Rejected.
func UpdateBookingStatus(ctx iris.Context) {
	actor, ok := utils.CurrentActor(ctx)
	if !ok {
		ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"message": "User not authenticated"})
		return
	}

	bookingID := ctx.Params().GetUintDefault("id", 0)
	if bookingID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid booking ID.", ctx)
		return
	}

	var request UpdateBookingStatusRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	booking, err := services.NewBookingService(storage.DB).UpdateStatus(actor, bookingID, request.Status)
	if err != nil {
		respondBookingError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"message": "Booking marked as " + booking.Status + ".",
		"data":    booking,
	})
}

// RemoveBooking - POST /api/bookings/{id}/remove
// Customer self-service archive; past bookings only.
func RemoveBooking(ctx iris.Context) {
	actor, ok := utils.CurrentActor(ctx)
	if !ok {
		ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"message": "User not authenticated"})
		return
	}

	bookingID := ctx.Params().GetUintDefault("id", 0)
	if bookingID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid booking ID.", ctx)
		return
	}

	if _, err := services.NewBookingService(storage.DB).SoftDelete(actor, bookingID); err != nil {
		respondBookingError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Booking removed from your list."})
}

// ClearPastBookings - POST /api/bookings/clear-past
func ClearPastBookings(ctx iris.Context) {
	actor, ok := utils.CurrentActor(ctx)
	if !ok {
		ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"message": "User not authenticated"})
		return
	}

	affected, err := services.NewBookingService(storage.DB).ClearPast(actor)
	if err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "server_error", "could not clear past bookings")
		return
	}

	message := "No past bookings were available to remove."
	if affected > 0 {
		message = "Past bookings removed from your list."
	}
	ctx.JSON(iris.Map{"success": true, "removed": affected, "message": message})
}

// respondBookingError maps service errors onto the HTTP error contract.
func respondBookingError(ctx iris.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.CreateNotFound(ctx)
	case errors.Is(err, services.ErrPermission):
		utils.CreateError(iris.StatusForbidden, "Forbidden", err.Error(), ctx)
	case errors.Is(err, services.ErrInvalidTransition):
		utils.CreateError(iris.StatusConflict, "Invalid Transition", err.Error(), ctx)
	case errors.Is(err, services.ErrValidation):
		utils.CreateError(iris.StatusBadRequest, "Validation Error", err.Error(), ctx)
	default:
		utils.CreateInternalServerError(ctx)
	}
}

type CreateBookingRequest struct {
	Date   string `json:"date" validate:"required"` // YYYY-MM-DD
	Time   string `json:"time" validate:"required"` // HH:MM
	Person int    `json:"person" validate:"required,min=1"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Accepted Rejected"`
}
