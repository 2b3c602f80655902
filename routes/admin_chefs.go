package routes

import (
	"net/http"
	"strings"

	"chef-booking-server/models"
	"chef-booking-server/storage"
	"chef-booking-server/utils"

	"github.com/kataras/iris/v12"
)

// AdminListChefs - GET /api/admin/chefs?q=&page=&per_page=
func AdminListChefs(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 12)
	if perPage <= 0 || perPage > 100 {
		perPage = 12
	}

	query := storage.DB.Model(&models.Chef{}).Preload("User")
	if q := strings.TrimSpace(ctx.URLParamDefault("q", "")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("lower(name) LIKE ? OR lower(specialty) LIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	var chefs []models.Chef
	if err := query.Order("id DESC").Offset((page - 1) * perPage).Limit(perPage).Find(&chefs).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	utils.JSONPage(ctx, chefs, page, perPage, total)
}

// AdminCreateChef - POST /api/admin/chefs
// Back-office creation on behalf of an existing user.
func AdminCreateChef(ctx iris.Context) {
	var body AdminChefInput
	if err := ctx.ReadJSON(&body); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, body.UserID).Error; err != nil {
		ctx.StopWithJSON(http.StatusNotFound, iris.Map{"error": "not_found", "message": "user not found"})
		return
	}

	var existing models.Chef
	if err := storage.DB.Where("user_id = ?", body.UserID).First(&existing).Error; err == nil {
		ctx.StopWithJSON(http.StatusConflict, iris.Map{"error": "conflict", "message": "user already has a chef profile"})
		return
	}

	chef := models.Chef{
		UserID:         body.UserID,
		Name:           body.Name,
		Specialty:      body.Specialty,
		Experience:     body.Experience,
		TeamMembers:    body.TeamMembers,
		PricePerPerson: body.PricePerPerson,
	}
	if body.Image != "" {
		chef.Image = storage.SaveBase64Image(body.Image, storage.ChefImagePath(storage.NewImageName()))
	}

	if err := storage.DB.Create(&chef).Error; err != nil {
		ctx.StopWithJSON(http.StatusInternalServerError, iris.Map{"error": "server_error"})
		return
	}

	utils.Audit(ctx, "chef.create", "chef", chef.ID, nil, chef)

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"data": chef})
}

// AdminUpdateChef - PATCH /api/admin/chefs/:id
func AdminUpdateChef(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var chef models.Chef
	if err := storage.DB.First(&chef, id).Error; err != nil {
		ctx.StopWithJSON(http.StatusNotFound, iris.Map{"error": "not_found"})
		return
	}

	var body AdminChefUpdateInput
	if err := ctx.ReadJSON(&body); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := chef
	if body.Name != "" {
		chef.Name = body.Name
	}
	if body.Specialty != "" {
		chef.Specialty = body.Specialty
	}
	if body.Experience != nil {
		chef.Experience = *body.Experience
	}
	if body.TeamMembers != nil {
		chef.TeamMembers = body.TeamMembers
	}
	if body.PricePerPerson != nil {
		chef.PricePerPerson = *body.PricePerPerson
	}
	if body.Image != "" {
		if url := storage.SaveBase64Image(body.Image, storage.ChefImagePath(storage.NewImageName())); url != "" {
			storage.DeleteMedia(chef.Image)
			chef.Image = url
		}
	}

	if err := storage.DB.Save(&chef).Error; err != nil {
		ctx.StopWithJSON(http.StatusInternalServerError, iris.Map{"error": "server_error"})
		return
	}

	utils.Audit(ctx, "chef.update", "chef", chef.ID, before, chef)

	ctx.JSON(iris.Map{"data": chef})
}

// AdminDeleteChef - DELETE /api/admin/chefs/:id
func AdminDeleteChef(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var chef models.Chef
	if err := storage.DB.First(&chef, id).Error; err != nil {
		ctx.StopWithJSON(http.StatusNotFound, iris.Map{"error": "not_found"})
		return
	}

	if err := storage.DB.Delete(&chef).Error; err != nil {
		ctx.StopWithJSON(http.StatusInternalServerError, iris.Map{"error": "server_error"})
		return
	}

	utils.Audit(ctx, "chef.delete", "chef", chef.ID, chef, nil)

	ctx.JSON(iris.Map{"success": true})
}

type AdminChefInput struct {
	UserID         uint    `json:"userID" validate:"required"`
	Name           string  `json:"name" validate:"required,max=100"`
	Specialty      string  `json:"specialty" validate:"required,max=200"`
	Experience     int     `json:"experience" validate:"gte=0"`
	TeamMembers    *int    `json:"teamMembers" validate:"omitempty,gte=2"`
	PricePerPerson float64 `json:"pricePerPerson" validate:"required,gt=0"`
	Image          string  `json:"image"`
}

type AdminChefUpdateInput struct {
	Name           string   `json:"name" validate:"omitempty,max=100"`
	Specialty      string   `json:"specialty" validate:"omitempty,max=200"`
	Experience     *int     `json:"experience" validate:"omitempty,gte=0"`
	TeamMembers    *int     `json:"teamMembers" validate:"omitempty,gte=2"`
	PricePerPerson *float64 `json:"pricePerPerson" validate:"omitempty,gt=0"`
	Image          string   `json:"image"`
}
