// internal/app/router.go
package app

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authHandler "vahanbazaar-service/internal/handlers/auth"
	bookingHandler "vahanbazaar-service/internal/handlers/booking"
	dealerHandler "vahanbazaar-service/internal/handlers/dealer"
	draftHandler "vahanbazaar-service/internal/handlers/draft"
	favouriteHandler "vahanbazaar-service/internal/handlers/favourite"
	listingHandler "vahanbazaar-service/internal/handlers/listing"
	mediaHandler "vahanbazaar-service/internal/handlers/media"
	referenceHandler "vahanbazaar-service/internal/handlers/reference"
	submissionHandler "vahanbazaar-service/internal/handlers/submission"
	uploadHandler "vahanbazaar-service/internal/handlers/upload"
	wsHandler "vahanbazaar-service/internal/handlers/websocket"
	"vahanbazaar-service/internal/middleware"
)

type Handlers struct {
	AuthHandler       *authHandler.AuthHandler
	ReferenceHandler  *referenceHandler.ReferenceHandler
	DraftHandler      *draftHandler.DraftHandler
	MediaHandler      *mediaHandler.MediaHandler
	UploadHandler     *uploadHandler.UploadHandler
	SubmissionHandler *submissionHandler.SubmissionHandler
	ListingHandler    *listingHandler.ListingHandler
	DealerHandler     *dealerHandler.DealerHandler
	FavouriteHandler  *favouriteHandler.FavouriteHandler
	BookingHandler    *bookingHandler.BookingHandler
	WSHandler         *wsHandler.WebSocketHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)

	// ==================== Auth ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/otp/request", h.AuthHandler.RequestOTP)
		authPublic.POST("/otp/verify", h.AuthHandler.VerifyOTP)
	}

	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.GET("/me", h.AuthHandler.GetMe)
		authProtected.PUT("/profile", h.AuthHandler.UpdateProfile)
		authProtected.POST("/logout", h.AuthHandler.Logout)
	}

	// ==================== Reference Cascade ====================
	// Suggest is anonymous; resolve/year write into the draft session.
	reference := api.Group("/reference")
	{
		reference.GET("/suggest", h.ReferenceHandler.Suggest)
		reference.POST("/resolve", h.ReferenceHandler.Resolve)
		reference.POST("/year", h.ReferenceHandler.CommitYear)
	}

	// ==================== Draft Flow ====================
	// The whole listing flow runs before sign-in; OptionalAuth lets the
	// submission gate see whether a session exists.
	drafts := api.Group("/drafts")
	drafts.Use(h.AuthMiddleware.OptionalAuth())
	{
		drafts.POST("/session", h.DraftHandler.NewSession)
		drafts.GET("", h.DraftHandler.Restore)
		drafts.DELETE("", h.DraftHandler.Discard)
		drafts.PUT("/vehicle", h.DraftHandler.SaveVehicle)
		drafts.PUT("/seller", h.DraftHandler.SaveSeller)
		drafts.PUT("/step", h.DraftHandler.SetStep)
		drafts.POST("/category", h.DraftHandler.SwitchCategory)

		// Staged media
		drafts.GET("/media", h.MediaHandler.ListBuckets)
		drafts.POST("/media/:bucket", h.MediaHandler.AddFiles)
		drafts.DELETE("/media/:bucket/:index", h.MediaHandler.RemoveFile)

		// Upload batch + submission gate
		drafts.POST("/uploads", h.UploadHandler.UploadBatch)
		drafts.POST("/submit", h.SubmissionHandler.Submit)
	}

	// ==================== Upload Destinations ====================
	api.POST("/uploads/sign", h.UploadHandler.Sign)

	// ==================== Listings ====================
	listings := api.Group("/listings")
	{
		listings.GET("", h.ListingHandler.Search)

		listingsAuth := listings.Group("")
		listingsAuth.Use(h.AuthMiddleware.Auth())
		{
			listingsAuth.POST("", h.ListingHandler.Publish)
			listingsAuth.GET("/mine", h.ListingHandler.Mine)
			listingsAuth.PUT("/:id/sold", h.ListingHandler.MarkSold)
			listingsAuth.DELETE("/:id", h.ListingHandler.Remove)
		}

		listings.GET("/:id", h.ListingHandler.Get)
	}

	// ==================== Dealers ====================
	dealers := api.Group("/dealers")
	{
		dealers.GET("", h.DealerHandler.List)
		dealers.GET("/:id", h.DealerHandler.Get)
	}

	// ==================== Favourites ====================
	favourites := api.Group("/favourites")
	favourites.Use(h.AuthMiddleware.Auth())
	{
		favourites.GET("", h.FavouriteHandler.List)
		favourites.POST("/:listing_id", h.FavouriteHandler.Add)
		favourites.DELETE("/:listing_id", h.FavouriteHandler.Remove)
	}

	// ==================== Bookings ====================
	bookings := api.Group("/bookings")
	bookings.Use(h.AuthMiddleware.Auth())
	{
		bookings.POST("", h.BookingHandler.Create)
		bookings.GET("", h.BookingHandler.Mine)
		bookings.GET("/incoming", h.BookingHandler.Incoming)
		bookings.PUT("/:id/confirm", h.BookingHandler.Confirm)
		bookings.PUT("/:id/cancel", h.BookingHandler.Cancel)
	}

	// ==================== Stats ====================
	api.GET("/ws/stats", h.WSHandler.GetStats)
}
