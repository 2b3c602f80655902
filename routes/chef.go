package routes

import (
	"strings"

	"chef-booking-server/models"
	"chef-booking-server/storage"
	"chef-booking-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// ListChefs - GET /api/chefs?q=&page=&per_page=
// Public. q is a case-insensitive substring over name, specialty and
// experience; empty q lists everything.
func ListChefs(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 12)
	if perPage <= 0 || perPage > 100 {
		perPage = 12
	}

	query := storage.DB.Model(&models.Chef{}).Preload("User")

	q := strings.TrimSpace(ctx.URLParamDefault("q", ""))
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"lower(name) LIKE ? OR lower(specialty) LIKE ? OR cast(experience as text) LIKE ?",
			like, like, like)
	}

	var total int64
	query.Count(&total)

	var chefs []models.Chef
	if err := query.Order("id DESC").Offset((page - 1) * perPage).Limit(perPage).Find(&chefs).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "server_error", "could not list chefs")
		return
	}

	utils.JSONPage(ctx, chefs, page, perPage, total)
}

// GetChef - GET /api/chefs/{id} (public)
func GetChef(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid chef ID.", ctx)
		return
	}

	var chef models.Chef
	if err := storage.DB.Preload("User").First(&chef, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"data": chef})
}

// BecomeChef creates the caller's single chef profile.
func BecomeChef(ctx iris.Context) {
	actor, ok := utils.CurrentActor(ctx)
	if !ok {
		ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"message": "User not authenticated"})
		return
	}

	var existing models.Chef
	if err := storage.DB.Where("user_id = ?", actor.ID).First(&existing).Error; err == nil {
		utils.CreateError(iris.StatusConflict, "Conflict", "You already have a chef profile.", ctx)
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.CreateInternalServerError(ctx)
		return
	}

	var input ChefInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	name := input.Name
	if name == "" {
		// Prefill from the profile the way the signup flow does.
		var profile models.Profile
		if err := storage.DB.Where("user_id = ?", actor.ID).First(&profile).Error; err == nil && profile.Name != "" {
			name = profile.Name
		} else {
			var user models.User
			storage.DB.First(&user, actor.ID)
			name = user.Username
		}
	}

	chef := models.Chef{
		UserID:         actor.ID,
		Name:           name,
		Specialty:      input.Specialty,
		Experience:     input.Experience,
		TeamMembers:    input.TeamMembers,
		PricePerPerson: input.PricePerPerson,
	}

	if input.Image != "" {
		relPath := storage.ChefImagePath(storage.NewImageName())
		chef.Image = storage.SaveBase64Image(input.Image, relPath)
	}

	if err := storage.DB.Create(&chef).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": chef})
}

type ChefInput struct {
	Name           string  `json:"name" validate:"omitempty,max=100"`
	Specialty      string  `json:"specialty" validate:"required,max=200"`
	Experience     int     `json:"experience" validate:"gte=0"`
	TeamMembers    *int    `json:"teamMembers" validate:"omitempty,gte=2"`
	PricePerPerson float64 `json:"pricePerPerson" validate:"required,gt=0"`
	Image          string  `json:"image"` // base64, optional
}
