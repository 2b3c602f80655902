package routes

import (
	"net/http"
	"strings"
	"time"

	"chef-booking-server/models"
	"chef-booking-server/storage"
	"chef-booking-server/utils"

	"github.com/kataras/iris/v12"
)

// AdminListContactQueries - GET /api/admin/contact-queries?q=&page=&per_page=
// Soft-deleted queries are hidden.
func AdminListContactQueries(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}

	query := storage.DB.Model(&models.ContactQuery{}).Where("is_deleted = ?", false)
	if q := strings.TrimSpace(ctx.URLParamDefault("q", "")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("lower(name) LIKE ? OR lower(email) LIKE ? OR lower(subject) LIKE ?", like, like, like)
	}

	var total int64
	query.Count(&total)

	var queries []models.ContactQuery
	if err := query.Order("created_at DESC").Offset((page - 1) * perPage).Limit(perPage).Find(&queries).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	utils.JSONPage(ctx, queries, page, perPage, total)
}

// AdminGetContactQuery - GET /api/admin/contact-queries/:id
func AdminGetContactQuery(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var query models.ContactQuery
	if err := storage.DB.Where("id = ? AND is_deleted = ?", id, false).First(&query).Error; err != nil {
		ctx.StopWithJSON(http.StatusNotFound, iris.Map{"error": "not_found"})
		return
	}

	ctx.JSON(iris.Map{"data": query})
}

// AdminDeleteContactQuery - DELETE /api/admin/contact-queries/:id
// Soft delete; already-deleted queries are a no-op.
func AdminDeleteContactQuery(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var query models.ContactQuery
	if err := storage.DB.First(&query, id).Error; err != nil {
		ctx.StopWithJSON(http.StatusNotFound, iris.Map{"error": "not_found"})
		return
	}

	if !query.IsDeleted {
		now := time.Now().UTC()
		query.IsDeleted = true
		query.DeletedAt = &now
		if err := storage.DB.Save(&query).Error; err != nil {
			ctx.StopWithJSON(http.StatusInternalServerError, iris.Map{"error": "server_error"})
			return
		}
		utils.Audit(ctx, "contact_query.delete", "contact_query", query.ID, nil, query)
	}

	ctx.JSON(iris.Map{"success": true})
}
