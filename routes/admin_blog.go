package routes

import (
	"net/http"
	"strings"

	"chef-booking-server/models"
	"chef-booking-server/storage"
	"chef-booking-server/utils"

	"github.com/kataras/iris/v12"
)

// AdminListBlogPosts - GET /api/admin/blogs?q=&page=&per_page=
// Unlike the public list, unpublished posts are included.
func AdminListBlogPosts(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 15)
	if perPage <= 0 || perPage > 100 {
		perPage = 15
	}

	query := storage.DB.Model(&models.BlogPost{}).Preload("Author")
	if q := strings.TrimSpace(ctx.URLParamDefault("q", "")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("lower(title) LIKE ? OR lower(content) LIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	var posts []models.BlogPost
	if err := query.Order("created_at DESC").Offset((page - 1) * perPage).Limit(perPage).Find(&posts).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	utils.JSONPage(ctx, posts, page, perPage, total)
}

// AdminCreateBlogPost - POST /api/admin/blogs
func AdminCreateBlogPost(ctx iris.Context) {
	actor, ok := utils.CurrentActor(ctx)
	if !ok {
		ctx.StopWithJSON(http.StatusUnauthorized, iris.Map{"error": "unauthorized"})
		return
	}

	var body BlogPostInput
	if err := ctx.ReadJSON(&body); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	post := models.BlogPost{
		Title:       body.Title,
		Content:     body.Content,
		AuthorID:    actor.ID,
		IsPublished: body.IsPublished == nil || *body.IsPublished,
	}
	if body.Image != "" {
		post.Image = storage.SaveBase64Image(body.Image, storage.BlogImagePath(storage.NewImageName()))
	}

	if err := storage.DB.Create(&post).Error; err != nil {
		ctx.StopWithJSON(http.StatusInternalServerError, iris.Map{"error": "server_error"})
		return
	}

	utils.Audit(ctx, "blog.create", "blog_post", post.ID, nil, post)

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"data": post})
}

// AdminUpdateBlogPost - PATCH /api/admin/blogs/:id
func AdminUpdateBlogPost(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var post models.BlogPost
	if err := storage.DB.First(&post, id).Error; err != nil {
		ctx.StopWithJSON(http.StatusNotFound, iris.Map{"error": "not_found"})
		return
	}

	var body BlogPostUpdateInput
	if err := ctx.ReadJSON(&body); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := post
	if body.Title != "" {
		post.Title = body.Title
	}
	if body.Content != "" {
		post.Content = body.Content
	}
	if body.IsPublished != nil {
		post.IsPublished = *body.IsPublished
	}
	if body.Image != "" {
		if url := storage.SaveBase64Image(body.Image, storage.BlogImagePath(storage.NewImageName())); url != "" {
			storage.DeleteMedia(post.Image)
			post.Image = url
		}
	}

	if err := storage.DB.Save(&post).Error; err != nil {
		ctx.StopWithJSON(http.StatusInternalServerError, iris.Map{"error": "server_error"})
		return
	}

	utils.Audit(ctx, "blog.update", "blog_post", post.ID, before, post)

	ctx.JSON(iris.Map{"data": post})
}

// AdminToggleBlogPublish - PATCH /api/admin/blogs/:id/publish
func AdminToggleBlogPublish(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var post models.BlogPost
	if err := storage.DB.First(&post, id).Error; err != nil {
		ctx.StopWithJSON(http.StatusNotFound, iris.Map{"error": "not_found"})
		return
	}

	before := post
	post.IsPublished = !post.IsPublished
	if err := storage.DB.Save(&post).Error; err != nil {
		ctx.StopWithJSON(http.StatusInternalServerError, iris.Map{"error": "server_error"})
		return
	}

	utils.Audit(ctx, "blog.toggle_publish", "blog_post", post.ID, before, post)

	ctx.JSON(iris.Map{"data": post})
}

// AdminDeleteBlogPost - DELETE /api/admin/blogs/:id
func AdminDeleteBlogPost(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var post models.BlogPost
	if err := storage.DB.First(&post, id).Error; err != nil {
		ctx.StopWithJSON(http.StatusNotFound, iris.Map{"error": "not_found"})
		return
	}

	if err := storage.DB.Delete(&post).Error; err != nil {
		ctx.StopWithJSON(http.StatusInternalServerError, iris.Map{"error": "server_error"})
		return
	}
	storage.DeleteMedia(post.Image)

	utils.Audit(ctx, "blog.delete", "blog_post", post.ID, post, nil)

	ctx.JSON(iris.Map{"success": true})
}

type BlogPostInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Content     string `json:"content" validate:"required"`
	Image       string `json:"image"`
	IsPublished *bool  `json:"isPublished"`
}

type BlogPostUpdateInput struct {
	Title       string `json:"title" validate:"omitempty,max=200"`
	Content     string `json:"content"`
	Image       string `json:"image"`
	IsPublished *bool  `json:"isPublished"`
}
