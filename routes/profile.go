package routes

import (
	"chef-booking-server/models"
	"chef-booking-server/storage"
	"chef-booking-server/utils"

	"encoding/json"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

// GetProfile returns a user's public profile by username. Public endpoint;
// whether the viewer owns it is reported so clients can show edit controls.
func GetProfile(ctx iris.Context) {
	username := ctx.Params().Get("username")

	var user models.User
	if err := storage.DB.Where("username = ?", username).First(&user).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var profile models.Profile
	if err := storage.DB.Preload("WorkImages").Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var chef models.Chef
	isChef := storage.DB.Where("user_id = ?", user.ID).First(&chef).Error == nil

	isOwner := false
	if viewerID, ok := ctx.Values().Get("userID").(uint); ok {
		isOwner = viewerID == user.ID
	}

	reply := iris.Map{
		"profile": profile,
		"isChef":  isChef,
		"isOwner": isOwner,
	}
	if isChef {
		reply["chef"] = chef
	}
	ctx.JSON(reply)
}

// EditProfile updates the caller's own profile.
func EditProfile(ctx iris.Context) {
	actor, ok := utils.CurrentActor(ctx)
	if !ok {
		ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"message": "User not authenticated"})
		return
	}

	var input EditProfileInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var profile models.Profile
	if err := storage.DB.Where("user_id = ?", actor.ID).First(&profile).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	profile.Name = input.Name
	profile.Email = input.Email
	profile.MobileNumber = input.MobileNumber
	profile.Location = input.Location
	profile.Education = input.Education
	profile.Experience = input.Experience
	profile.Speciality = input.Speciality
	profile.Bio = input.Bio
	if input.Dishes != nil {
		if raw, err := json.Marshal(input.Dishes); err == nil {
			profile.Dishes = datatypes.JSON(raw)
		}
	}

	if input.ProfileImage != "" {
		relPath := storage.ProfileImagePath(actor.ID, storage.NewImageName())
		if url := storage.SaveBase64Image(input.ProfileImage, relPath); url != "" {
			storage.DeleteMedia(profile.ProfileImage)
			profile.ProfileImage = url
		}
	}

	if err := storage.DB.Save(&profile).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"data": profile})
}

// UploadWorkImages appends portfolio images to the caller's own profile.
// Images arrive base64-encoded and are written under work_images/{username}/.
func UploadWorkImages(ctx iris.Context) {
	actor, ok := utils.CurrentActor(ctx)
	if !ok {
		ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"message": "User not authenticated"})
		return
	}

	username := ctx.Params().Get("username")
	var user models.User
	if err := storage.DB.Where("username = ?", username).First(&user).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if user.ID != actor.ID {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "You can only manage images for your own profile.", ctx)
		return
	}

	var profile models.Profile
	if err := storage.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input WorkImagesInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	created := make([]models.WorkImage, 0, len(input.Images))
	for _, img := range input.Images {
		relPath := storage.WorkImagePath(user.Username, storage.NewImageName())
		url := storage.SaveBase64Image(img, relPath)
		if url == "" {
			continue
		}
		workImage := models.WorkImage{ProfileID: profile.ID, Image: url}
		if err := storage.DB.Create(&workImage).Error; err == nil {
			created = append(created, workImage)
		}
	}

	ctx.JSON(iris.Map{"data": created})
}

// UpdateWorkImage replaces one portfolio image in place.
func UpdateWorkImage(ctx iris.Context) {
	workImage, profile, ok := ownedWorkImage(ctx)
	if !ok {
		return
	}

	var input WorkImageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, profile.UserID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	relPath := storage.WorkImagePath(user.Username, storage.NewImageName())
	url := storage.SaveBase64Image(input.Image, relPath)
	if url == "" {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Image could not be decoded.", ctx)
		return
	}

	storage.DeleteMedia(workImage.Image)
	workImage.Image = url
	if err := storage.DB.Save(workImage).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": workImage})
}

// DeleteWorkImage removes one portfolio image and its file.
func DeleteWorkImage(ctx iris.Context) {
	workImage, _, ok := ownedWorkImage(ctx)
	if !ok {
		return
	}

	if err := storage.DB.Delete(&models.WorkImage{}, workImage.ID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	storage.DeleteMedia(workImage.Image)
	ctx.JSON(iris.Map{"success": true})
}

// ownedWorkImage loads the work image in the URL and verifies the caller
// owns the profile it belongs to. Replies and returns ok=false otherwise.
func ownedWorkImage(ctx iris.Context) (*models.WorkImage, *models.Profile, bool) {
	actor, ok := utils.CurrentActor(ctx)
	if !ok {
		ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"message": "User not authenticated"})
		return nil, nil, false
	}

	imageID := ctx.Params().GetUintDefault("imageID", 0)
	if imageID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid image ID.", ctx)
		return nil, nil, false
	}

	var workImage models.WorkImage
	if err := storage.DB.First(&workImage, imageID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return nil, nil, false
	}

	var profile models.Profile
	if err := storage.DB.First(&profile, workImage.ProfileID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return nil, nil, false
	}
	if profile.UserID != actor.ID {
		// 404, not 403: do not reveal other users' image IDs.
		utils.CreateNotFound(ctx)
		return nil, nil, false
	}
	return &workImage, &profile, true
}

type EditProfileInput struct {
	Name         string   `json:"name" validate:"required,max=100"`
	Email        string   `json:"email" validate:"omitempty,email"`
	MobileNumber string   `json:"mobileNumber" validate:"omitempty,max=15"`
	Location     string   `json:"location" validate:"omitempty,max=255"`
	Education    string   `json:"education" validate:"omitempty,max=255"`
	Experience   int      `json:"experience" validate:"gte=0"`
	Speciality   string   `json:"speciality"`
	Bio          string   `json:"bio"`
	Dishes       []string `json:"dishes"`
	ProfileImage string   `json:"profileImage"` // base64, optional
}

type WorkImagesInput struct {
	Images []string `json:"images" validate:"required,min=1,dive,required"`
}

type WorkImageInput struct {
	Image string `json:"image" validate:"required"`
}
