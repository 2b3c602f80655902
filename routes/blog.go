package routes

import (
	"chef-booking-server/models"
	"chef-booking-server/storage"
	"chef-booking-server/utils"

	"github.com/kataras/iris/v12"
)

// ListBlogPosts - GET /api/blog?page=&per_page= (public, published only)
func ListBlogPosts(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 10)
	if perPage <= 0 || perPage > 50 {
		perPage = 10
	}

	query := storage.DB.Model(&models.BlogPost{}).Where("is_published = ?", true)

	var total int64
	query.Count(&total)

	var posts []models.BlogPost
	if err := query.Preload("Author").Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).Find(&posts).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "server_error", "could not list blog posts")
		return
	}

	utils.JSONPage(ctx, posts, page, perPage, total)
}

// GetBlogPost - GET /api/blog/{id} (public; unpublished posts 404)
func GetBlogPost(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid post ID.", ctx)
		return
	}

	var post models.BlogPost
	if err := storage.DB.Preload("Author").
		Where("id = ? AND is_published = ?", id, true).First(&post).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"data": post})
}
