package router

import (
	"time"

	"github.com/sisventas/separata-backend/internal/handlers"
	"github.com/sisventas/separata-backend/internal/middleware"
	"github.com/sisventas/separata-backend/internal/services"
	"github.com/sisventas/separata-backend/internal/services/excel"
	"github.com/sisventas/separata-backend/internal/services/export"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin router with the separata API routes
func SetupRouter(
	db *gorm.DB,
	eventService services.EventPublisher,
	sseHub *services.SSEHub,
	priceFileSvc *export.Service,
	spreadsheetSvc *excel.Service,
) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	// Create a new router
	r := gin.New()

	// Use middleware
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Create middleware
	identityMiddleware := middleware.NewIdentityMiddleware()

	// Create handlers
	separataHandler := handlers.NewSeparataHandler(db, eventService)
	itemHandler := handlers.NewItemHandler(db, eventService)
	exportHandler := handlers.NewExportHandler(db, priceFileSvc, spreadsheetSvc)
	catalogHandler := handlers.NewCatalogHandler()
	eventsHandler := handlers.NewEventsHandler(sseHub)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	api := r.Group("/api/v1")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now().Format(time.RFC3339),
			})
		})

		// Protected routes
		protected := api.Group("")
		protected.Use(identityMiddleware.RequireIdentity())
		{
			// Separata routes
			separatas := protected.Group("/separatas")
			{
				separatas.GET("", separataHandler.ListSeparatas)
				separatas.POST("/find-or-create", separataHandler.FindOrCreate)
				separatas.GET("/:id", separataHandler.GetSeparataByID)
				separatas.PUT("/:id/deadline", separataHandler.UpdateDeadline)
				separatas.PUT("/:id/title", separataHandler.UpdateTitle)
				separatas.POST("/:id/export/pricefile", exportHandler.ExportPriceFile)
				separatas.GET("/:id/export/spreadsheet", exportHandler.ExportSpreadsheet)
			}

			// Item routes
			items := protected.Group("/items")
			{
				items.POST("", itemHandler.AddItem)
				items.PUT("/:id", itemHandler.UpdateItem)
				items.DELETE("/:id", itemHandler.DeleteItem)
			}

			// Catalog passthrough
			protected.GET("/catalog/:code", catalogHandler.GetItemByCode)

			// Refresh signal stream
			protected.GET("/events/stream", eventsHandler.StreamRefreshSSE)
		}
	}

	return r
}
