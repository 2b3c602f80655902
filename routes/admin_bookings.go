package routes

import (
	"net/http"
	"strings"
	"time"

	"chef-booking-server/models"
	"chef-booking-server/services"
	"chef-booking-server/storage"
	"chef-booking-server/utils"

	"github.com/kataras/iris/v12"
)

// AdminListBookings - GET /api/admin/bookings?q=&status=&archived=&page=&per_page=
// Archived rows are excluded unless archived=true is passed explicitly.
func AdminListBookings(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 15)
	if perPage <= 0 || perPage > 100 {
		perPage = 15
	}

	query := storage.DB.Model(&models.Booking{}).Preload("Customer").Preload("Chef")

	switch ctx.URLParamDefault("archived", "false") {
	case "true":
		query = query.Where("is_deleted = ?", true)
	case "all":
		// no filter
	default:
		query = query.Scopes(models.ActiveBookings)
	}

	if status := strings.TrimSpace(ctx.URLParamDefault("status", "")); status != "" {
		query = query.Where("status = ?", status)
	}

	if q := strings.TrimSpace(ctx.URLParamDefault("q", "")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.
			Joins("JOIN users ON users.id = bookings.customer_id").
			Joins("JOIN chefs ON chefs.id = bookings.chef_id").
			Where("lower(users.username) LIKE ? OR lower(users.email) LIKE ? OR lower(chefs.name) LIKE ?", like, like, like)
	}

	var total int64
	query.Count(&total)

	var bookings []models.Booking
	if err := query.Order("date DESC, time DESC").Offset((page - 1) * perPage).Limit(perPage).Find(&bookings).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	utils.JSONPage(ctx, bookings, page, perPage, total)
}

// AdminGetBooking - GET /api/admin/bookings/:id
func AdminGetBooking(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var booking models.Booking
	if err := storage.DB.Preload("Customer").Preload("Chef").Preload("Chef.User").First(&booking, id).Error; err != nil {
		ctx.StopWithJSON(http.StatusNotFound, iris.Map{"error": "not_found"})
		return
	}

	reply := iris.Map{"data": booking}
	var review models.Review
	if err := storage.DB.Where("booking_id = ?", booking.ID).First(&review).Error; err == nil {
		reply["review"] = review
	}

	ctx.JSON(reply)
}

// AdminCancelBooking - POST /api/admin/bookings/:id/cancel
// Staff soft delete; unlike the self-service path it has no past-only
// restriction.
func AdminCancelBooking(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	actor, ok := utils.CurrentActor(ctx)
	if !ok {
		ctx.StopWithJSON(http.StatusUnauthorized, iris.Map{"error": "unauthorized"})
		return
	}

	booking, svcErr := services.NewBookingService(storage.DB).SoftDelete(actor, id)
	if svcErr != nil {
		respondBookingError(ctx, svcErr)
		return
	}

	utils.Audit(ctx, "booking.cancel", "booking", booking.ID, nil, booking)

	ctx.JSON(iris.Map{"success": true, "data": booking})
}

// AdminHardDeleteBooking - DELETE /api/admin/bookings/:id
// Permanent removal; allowed only on already-archived bookings.
func AdminHardDeleteBooking(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	actor, ok := utils.CurrentActor(ctx)
	if !ok {
		ctx.StopWithJSON(http.StatusUnauthorized, iris.Map{"error": "unauthorized"})
		return
	}

	var booking models.Booking
	hadRow := storage.DB.First(&booking, id).Error == nil

	if svcErr := services.NewBookingService(storage.DB).HardDelete(actor, id); svcErr != nil {
		respondBookingError(ctx, svcErr)
		return
	}

	if hadRow {
		utils.Audit(ctx, "booking.hard_delete", "booking", booking.ID, booking, nil)
	}

	ctx.JSON(iris.Map{"success": true})
}

// AdminRunCleanup - POST /api/admin/bookings/cleanup {retentionDays, dryRun}
// Manual trigger of the retention job from the back-office.
func AdminRunCleanup(ctx iris.Context) {
	var body AdminCleanupInput
	if err := ctx.ReadJSON(&body); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	retention := services.DefaultRetentionDays
	if body.RetentionDays != nil {
		retention = *body.RetentionDays
	}

	result, err := services.CleanupPastBookings(storage.DB, retention, body.DryRun, timeNow())
	if err != nil {
		ctx.StopWithJSON(http.StatusInternalServerError, iris.Map{"error": "server_error"})
		return
	}

	if !body.DryRun {
		utils.Audit(ctx, "booking.cleanup", "booking", 0, nil, result)
	}

	ctx.JSON(iris.Map{"data": result})
}

// swappable in tests
var timeNow = time.Now

type AdminCleanupInput struct {
	RetentionDays *int `json:"retentionDays" validate:"omitempty,gte=0"`
	DryRun        bool `json:"dryRun"`
}
