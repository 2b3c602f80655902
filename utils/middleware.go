package utils

import (
	"chef-booking-server/models"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// UserIDFromTokenMiddleware extracts user ID and role from the JWT and
// stores them in the request context for downstream handlers.
func UserIDFromTokenMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	ctx.Values().Set("userID", claims.ID)
	ctx.Values().Set("role", claims.Role)
	ctx.Next()
}

// StaffOnlyMiddleware ensures the requester has staff or super_admin role.
func StaffOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	role := claims.Role
	if role != models.RoleStaff && role != models.RoleSuperAdmin {
		ctx.StopWithJSON(iris.StatusForbidden, iris.Map{"error": "forbidden", "message": "staff access required"})
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Values().Set("role", claims.Role)
	ctx.Next()
}

// SuperAdminOnlyMiddleware ensures only super admins can access.
func SuperAdminOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != models.RoleSuperAdmin {
		ctx.StopWithJSON(iris.StatusForbidden, iris.Map{"error": "forbidden", "message": "super_admin access required"})
		return
	}
	ctx.Next()
}

// CurrentActor builds the explicit actor passed into every service
// operation; no service reads the session on its own.
func CurrentActor(ctx iris.Context) (models.Actor, bool) {
	userIDValue := ctx.Values().Get("userID")
	if userIDValue == nil {
		return models.Actor{}, false
	}
	userID, ok := userIDValue.(uint)
	if !ok {
		return models.Actor{}, false
	}
	role, _ := ctx.Values().Get("role").(string)
	if role == "" {
		role = models.RoleUser
	}
	return models.Actor{ID: userID, Role: role}, true
}
