package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taxifit/config"
	"taxifit/database"
	"taxifit/handlers"
	"taxifit/oracle"
)

func main() {
	cfg := config.Load()

	database.InitDatabase(cfg.DatabasePath)
	handlers.Configure(cfg.UploadDir, selectOracle(cfg))

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	router.MaxMultipartMemory = 10 << 20

	api := router.Group("/api")
	{
		api.POST("/analyze", handlers.UploadAndAnalyze)

		api.GET("/history", handlers.GetAllAnalyses)
		api.GET("/history/:id", handlers.GetAnalysisById)
		api.DELETE("/history/:id", handlers.DeleteAnalysis)

		api.GET("/statistics", handlers.GetStatistics)
	}

	router.Static("/uploads", cfg.UploadDir)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Taxi Fitness Analysis API",
		})
	})

	port := ":" + cfg.Port
	log.Printf("Server starting on port %s", port)
	if err := router.Run(port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// selectOracle picks the inference backend: the HTTP service when ORACLE_URL
// is configured, the deterministic in-process mock otherwise. A failing
// health check is logged but not fatal; per-request errors surface to the
// caller instead of degrading to mock predictions.
func selectOracle(cfg *config.Config) oracle.Oracle {
	if cfg.OracleURL == "" {
		log.Println("ORACLE_URL not set, using deterministic mock oracle")
		return oracle.NewMock()
	}

	o := oracle.NewHTTP(cfg.OracleURL, cfg.OracleTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := o.Health(ctx); err != nil {
		log.Printf("Oracle health check failed: %v", err)
	} else {
		log.Printf("Oracle healthy at %s", cfg.OracleURL)
	}
	return o
}
