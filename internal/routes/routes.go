package routes

import (
	"net/http"

	"github.com/01moynul/stockroom-golang/internal/handlers"
	"github.com/01moynul/stockroom-golang/internal/middleware"
	"github.com/01moynul/stockroom-golang/internal/session"
	"github.com/gin-gonic/gin"
)

func SetupRouter(h *handlers.Handlers, sessions session.Store) *gin.Engine {
	router := gin.Default()

	// --- CORS must be the very first middleware ---
	router.Use(middleware.CORS(h.Config.AllowedOrigins))

	// --- Uploaded media (gallery images, logos, swatches) ---
	router.Static("/media", h.Config.MediaRoot)

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Public Catalog Routes ---
		v1.GET("/categories", h.GetAllCategories)
		v1.GET("/categories/:slug", h.GetCategory)
		v1.GET("/brands", h.GetAllBrands)
		v1.GET("/products", h.ListProducts)
		v1.GET("/products/:id", h.GetProduct)
		v1.GET("/products/:id/stock", h.GetProductStock)
		v1.GET("/products/:id/inventory", h.GetProductInventory)
		v1.GET("/products/:id/galleries", h.GetProductGalleries)

		// --- Cart Routes (Session) ---
		cart := v1.Group("/cart")
		cart.Use(middleware.Session(sessions, h.Config.SessionTTL, h.Config.SessionSecure))
		{
			cart.GET("", h.GetCart)
			cart.PUT("", h.UpdateCart)
			cart.DELETE("", h.ClearCart)
			cart.GET("/items/:id", h.GetCartItem)
			cart.POST("/items", h.AddToCart)
			cart.DELETE("/items/:id", h.DeleteCartItem)
			cart.POST("/checkout", h.Checkout)
		}

		// --- Admin Login (Public) ---
		v1.POST("/admin/login", h.AdminLogin)

		// --- Admin-Only Routes ---
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuth(h.Tokens))
		{
			admin.GET("/categories", h.ListCategoriesAdmin)
			admin.POST("/categories", h.CreateCategory)
			admin.PUT("/categories/:id", h.UpdateCategory)
			admin.DELETE("/categories/:id", h.DeleteCategory)

			admin.GET("/manufacturers", h.GetAllManufacturers)
			admin.POST("/manufacturers", h.CreateManufacturer)
			admin.PUT("/manufacturers/:id", h.UpdateManufacturer)
			admin.DELETE("/manufacturers/:id", h.DeleteManufacturer)

			admin.GET("/brands", h.GetAllBrands)
			admin.POST("/brands", h.CreateBrand)
			admin.PUT("/brands/:id", h.UpdateBrand)
			admin.DELETE("/brands/:id", h.DeleteBrand)

			admin.GET("/colors", h.GetAllColors)
			admin.POST("/colors", h.CreateColor)
			admin.PUT("/colors/:id", h.UpdateColor)
			admin.DELETE("/colors/:id", h.DeleteColor)

			admin.GET("/units", h.GetAllUnits)
			admin.POST("/units", h.CreateUnit)
			admin.DELETE("/units/:id", h.DeleteUnit)

			admin.GET("/measurements", h.GetAllMeasurements)
			admin.POST("/measurements", h.CreateMeasurement)
			admin.DELETE("/measurements/:id", h.DeleteMeasurement)

			admin.POST("/products", h.CreateProduct)
			admin.PUT("/products/:id", h.UpdateProduct)
			admin.DELETE("/products/:id", h.DeleteProduct)
			admin.GET("/products/:id/prices", h.GetProductPrices)
			admin.PUT("/products/:id/tags", h.SetProductTags)
			admin.POST("/products/:id/related", h.RelateProduct)
			admin.DELETE("/products/:id/related/:relId", h.UnrelateProduct)

			admin.POST("/stock", h.CreateStockItem)
			admin.GET("/stock/:id", h.GetStockItem)
			admin.PUT("/stock/:id", h.UpdateStockItem)
			admin.DELETE("/stock/:id", h.DeleteStockItem)
			admin.GET("/stock/:id/prices", h.GetStockPrices)

			admin.POST("/galleries", h.CreateGallery)
			admin.POST("/galleries/:id/images", h.UploadGalleryImage)
			admin.DELETE("/galleries/:id/images/:imageId", h.DeleteGalleryImage)

			admin.GET("/cache/stats", h.GetCacheStats)
			admin.DELETE("/cache", h.FlushCache)
		}
	}

	return router
}
