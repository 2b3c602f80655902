package main

import (
	"os"
	"strconv"

	"chef-booking-server/routes"
	"chef-booking-server/services"
	"chef-booking-server/storage"
	"chef-booking-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"time"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()
	storage.InitializeMedia()

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := ctx.ReadJSON(&tokenInput); err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	// Media files live under MEDIA_ROOT with stable relative paths
	// (profile_images/, work_images/, chef_dishes/, blog_images/).
	app.HandleDir("/media", iris.Dir(storage.MediaRoot()))

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/google", routes.GoogleLoginOrSignUp)
		user.Post("/apple", routes.AppleLoginOrSignUp)
		user.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
	}

	chefs := app.Party("/api/chefs")
	{
		chefs.Get("/", routes.ListChefs)
		chefs.Get("/{id:uint}", routes.GetChef)
		chefs.Post("/become", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.BecomeChef)
	}

	bookings := app.Party("/api/bookings", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		bookings.Post("/chef/{chefID:uint}", routes.CreateBooking)
		bookings.Get("/dashboard", routes.GetDashboard)
		bookings.Patch("/{id:uint}/status", routes.UpdateBookingStatus)
		bookings.Post("/{id:uint}/remove", routes.RemoveBooking)
		bookings.Post("/clear-past", routes.ClearPastBookings)
	}

	reviews := app.Party("/api/reviews", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		reviews.Post("/booking/{bookingID:uint}", routes.SubmitReview)
		reviews.Get("/{id:uint}", routes.GetReview)
		reviews.Post("/{id:uint}/response", routes.SubmitChefResponse)
	}

	profile := app.Party("/api/profile")
	{
		profile.Get("/{username}", routes.GetProfile)
		profile.Patch("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.EditProfile)
		profile.Post("/{username}/work-images", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UploadWorkImages)
		profile.Patch("/work-images/{imageID:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UpdateWorkImage)
		profile.Delete("/work-images/{imageID:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.DeleteWorkImage)
	}

	app.Get("/api/blog", routes.ListBlogPosts)
	app.Get("/api/blog/{id:uint}", routes.GetBlogPost)
	app.Post("/api/contact", routes.SubmitContactQuery)

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.StaffOnlyMiddleware)
	{
		admin.Get("/dashboard", routes.AdminDashboard)

		admin.Get("/users", routes.AdminListUsers)
		admin.Get("/users/{id:uint}", routes.AdminGetUser)
		admin.Patch("/users/{id:uint}", routes.AdminUpdateUser)
		admin.Patch("/users/{id:uint}/active", routes.AdminToggleUserActive)
		admin.Patch("/users/{id:uint}/role", utils.SuperAdminOnlyMiddleware, routes.AdminChangeUserRole)
		admin.Delete("/users/{id:uint}", utils.SuperAdminOnlyMiddleware, routes.AdminDeleteUser)

		admin.Get("/chefs", routes.AdminListChefs)
		admin.Post("/chefs", routes.AdminCreateChef)
		admin.Patch("/chefs/{id:uint}", routes.AdminUpdateChef)
		admin.Delete("/chefs/{id:uint}", routes.AdminDeleteChef)

		admin.Get("/bookings", routes.AdminListBookings)
		admin.Get("/bookings/{id:uint}", routes.AdminGetBooking)
		admin.Post("/bookings/{id:uint}/cancel", routes.AdminCancelBooking)
		admin.Delete("/bookings/{id:uint}", routes.AdminHardDeleteBooking)
		admin.Post("/bookings/cleanup", routes.AdminRunCleanup)

		admin.Get("/blogs", routes.AdminListBlogPosts)
		admin.Post("/blogs", routes.AdminCreateBlogPost)
		admin.Patch("/blogs/{id:uint}", routes.AdminUpdateBlogPost)
		admin.Patch("/blogs/{id:uint}/publish", routes.AdminToggleBlogPublish)
		admin.Delete("/blogs/{id:uint}", routes.AdminDeleteBlogPost)

		admin.Get("/contact-queries", routes.AdminListContactQueries)
		admin.Get("/contact-queries/{id:uint}", routes.AdminGetContactQuery)
		admin.Delete("/contact-queries/{id:uint}", routes.AdminDeleteContactQuery)

		admin.Get("/audit", routes.AdminListAuditLogs)
	}

	if os.Getenv("BOOKING_CLEANUP_ENABLED") == "true" {
		retention := services.DefaultRetentionDays
		if v, err := strconv.Atoi(os.Getenv("BOOKING_RETENTION_DAYS")); err == nil {
			retention = v
		}
		services.StartCleanupTicker(storage.DB, retention, 24*time.Hour, make(chan struct{}))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	app.Listen(":" + port)
}
