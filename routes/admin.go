package routes

import (
	"net/http"
	"strings"

	"chef-booking-server/models"
	"chef-booking-server/storage"
	"chef-booking-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
)

// AdminDashboard - GET /api/admin/dashboard
func AdminDashboard(ctx iris.Context) {
	var chefs, bookings, users, queries int64
	storage.DB.Model(&models.Chef{}).Count(&chefs)
	storage.DB.Model(&models.Booking{}).Scopes(models.ActiveBookings).Count(&bookings)
	storage.DB.Model(&models.User{}).Count(&users)
	storage.DB.Model(&models.ContactQuery{}).Where("is_deleted = ?", false).Count(&queries)

	var recent []models.Booking
	storage.DB.Preload("Customer").Preload("Chef").
		Scopes(models.ActiveBookings).
		Order("created_at DESC").Limit(6).Find(&recent)

	ctx.JSON(iris.Map{
		"chefsCount":    chefs,
		"bookingsCount": bookings,
		"usersCount":    users,
		"queriesCount":  queries,
		"recentBookings": recent,
	})
}

// AdminListUsers - GET /api/admin/users?role=&q=&page=&per_page=
func AdminListUsers(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	var users []models.User
	q := strings.TrimSpace(ctx.URLParamDefault("q", ""))
	role := strings.TrimSpace(ctx.URLParamDefault("role", ""))

	query := storage.DB.Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("lower(username) LIKE ? OR lower(first_name) LIKE ? OR lower(last_name) LIKE ? OR lower(email) LIKE ?", like, like, like, like)
	}

	var total int64
	query.Count(&total)
	query = query.Order("id DESC").Offset((page - 1) * perPage).Limit(perPage)
	if err := query.Find(&users).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.JSONPage(ctx, users, page, perPage, total)
}

// AdminGetUser - GET /api/admin/users/:id
func AdminGetUser(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		ctx.StopWithJSON(http.StatusNotFound, iris.Map{"error": "not_found"})
		return
	}

	var profile models.Profile
	storage.DB.Preload("WorkImages").Where("user_id = ?", user.ID).First(&profile)

	ctx.JSON(iris.Map{"data": user, "profile": profile})
}

// AdminUpdateUser - PATCH /api/admin/users/:id
func AdminUpdateUser(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var body AdminUpdateUserInput
	if err := ctx.ReadJSON(&body); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		ctx.StopWithJSON(http.StatusNotFound, iris.Map{"error": "not_found"})
		return
	}

	before := user
	if body.Username != "" {
		user.Username = body.Username
	}
	if body.Email != "" {
		user.Email = strings.ToLower(body.Email)
	}
	if body.FirstName != "" {
		user.FirstName = body.FirstName
	}
	if body.LastName != "" {
		user.LastName = body.LastName
	}
	if err := storage.DB.Save(&user).Error; err != nil {
		ctx.StopWithJSON(http.StatusInternalServerError, iris.Map{"error": "server_error"})
		return
	}

	utils.Audit(ctx, "user.update", "user", user.ID, before, user)

	ctx.JSON(iris.Map{"data": user})
}

// AdminToggleUserActive - PATCH /api/admin/users/:id/active
func AdminToggleUserActive(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		ctx.StopWithJSON(http.StatusNotFound, iris.Map{"error": "not_found"})
		return
	}

	before := user
	active := user.IsActive == nil || *user.IsActive
	toggled := !active
	user.IsActive = &toggled
	if err := storage.DB.Save(&user).Error; err != nil {
		ctx.StopWithJSON(http.StatusInternalServerError, iris.Map{"error": "server_error"})
		return
	}

	utils.Audit(ctx, "user.toggle_active", "user", user.ID, before, user)

	ctx.JSON(iris.Map{"data": user})
}

// AdminChangeUserRole - PATCH /api/admin/users/:id/role (super_admin only)
func AdminChangeUserRole(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var body struct {
		Role string `json:"role"`
	}
	validRoles := []string{models.RoleUser, models.RoleStaff, models.RoleSuperAdmin}
	if err := ctx.ReadJSON(&body); err != nil || !slices.Contains(validRoles, body.Role) {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "invalid_role"})
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		ctx.StopWithJSON(http.StatusNotFound, iris.Map{"error": "not_found"})
		return
	}

	before := user
	user.Role = body.Role
	if err := storage.DB.Save(&user).Error; err != nil {
		ctx.StopWithJSON(http.StatusInternalServerError, iris.Map{"error": "server_error"})
		return
	}

	utils.Audit(ctx, "user.role_update", "user", user.ID, before, user)

	ctx.JSON(iris.Map{"data": user})
}

// AdminDeleteUser - DELETE /api/admin/users/:id (super_admin only)
func AdminDeleteUser(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		ctx.StopWithJSON(http.StatusNotFound, iris.Map{"error": "not_found"})
		return
	}

	if err := storage.DB.Delete(&user).Error; err != nil {
		ctx.StopWithJSON(http.StatusInternalServerError, iris.Map{"error": "server_error"})
		return
	}

	utils.Audit(ctx, "user.delete", "user", user.ID, user, nil)

	ctx.JSON(iris.Map{"success": true})
}

// AdminListAuditLogs - GET /api/admin/audit?action=&page=&per_page=
func AdminListAuditLogs(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 50)
	if perPage <= 0 || perPage > 200 {
		perPage = 50
	}

	q := storage.DB.Model(&models.AuditLog{})
	if action := strings.TrimSpace(ctx.URLParamDefault("action", "")); action != "" {
		q = q.Where("action = ?", action)
	}

	var total int64
	q.Count(&total)

	var logs []models.AuditLog
	if err := q.Order("created_at DESC").Offset((page - 1) * perPage).Limit(perPage).Find(&logs).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	utils.JSONPage(ctx, logs, page, perPage, total)
}

type AdminUpdateUserInput struct {
	Username  string `json:"username" validate:"omitempty,min=3,max=150,alphanum"`
	Email     string `json:"email" validate:"omitempty,email,max=256"`
	FirstName string `json:"firstName" validate:"omitempty,max=256"`
	LastName  string `json:"lastName" validate:"omitempty,max=256"`
}
