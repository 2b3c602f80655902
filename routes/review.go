package routes

import (
	"chef-booking-server/models"
	"chef-booking-server/services"
	"chef-booking-server/storage"
	"chef-booking-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// SubmitReview - POST /api/reviews/booking/{bookingID}
// One review per booking; resubmitting returns the existing review with 200
// instead of erroring.
func SubmitReview(ctx iris.Context) {
	actor, ok := utils.CurrentActor(ctx)
	if !ok {
		ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"message": "User not authenticated"})
		return
	}

	bookingID := ctx.Params().GetUintDefault("bookingID", 0)
	if bookingID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid booking ID.", ctx)
		return
	}

	var request SubmitReviewRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	review, created, err := services.NewReviewService(storage.DB).SubmitReview(actor, bookingID, request.Rating, request.Comment)
	if err != nil {
		respondBookingError(ctx, err)
		return
	}

	if created {
		ctx.StatusCode(iris.StatusCreated)
	}
	ctx.JSON(iris.Map{"data": review, "created": created})
}

// GetReview - GET /api/reviews/{id}
// Returns the review together with the chef response when one exists.
func GetReview(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid review ID.", ctx)
		return
	}

	var review models.Review
	if err := storage.DB.Preload("Booking").Preload("Booking.Chef").First(&review, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	reply := iris.Map{"data": review}

	var response models.ChefResponse
	if err := storage.DB.Where("review_id = ?", review.ID).First(&response).Error; err == nil {
		reply["response"] = response
	} else if err != gorm.ErrRecordNotFound {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(reply)
}

// SubmitChefResponse - POST /api/reviews/{id}/response
// Only the owner of the reviewed booking's chef profile, only once.
func SubmitChefResponse(ctx iris.Context) {
	actor, ok := utils.CurrentActor(ctx)
	if !ok {
		ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"message": "User not authenticated"})
		return
	}

	reviewID := ctx.Params().GetUintDefault("id", 0)
	if reviewID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid review ID.", ctx)
		return
	}

	var request SubmitResponseRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	response, err := services.NewReviewService(storage.DB).SubmitResponse(actor, reviewID, request.Response)
	if err != nil {
		respondBookingError(ctx, err)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": response})
}

type SubmitReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

type SubmitResponseRequest struct {
	Response string `json:"response" validate:"required"`
}
