package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taxifit/database"
	"taxifit/decision"
	"taxifit/dirt"
	"taxifit/models"
	"taxifit/oracle"
	"taxifit/report"
	"taxifit/vision"
)

var (
	uploadDir                  = "./uploads"
	damageOracle oracle.Oracle = oracle.NewMock()
)

// Configure sets the upload directory and the oracle backend. Called once
// from main before the router starts serving.
func Configure(dir string, o oracle.Oracle) {
	uploadDir = dir
	damageOracle = o
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}
}

func UploadAndAnalyze(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}
	defer file.Close()
	log.Printf("File received: %s", header.Filename)

	ext := filepath.Ext(header.Filename)
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file format. Only JPG, JPEG, and PNG are allowed"})
		return
	}

	analysisID := uuid.New().String()
	savedPath := filepath.Join(uploadDir, analysisID+ext)

	out, err := os.Create(savedPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		log.Printf("Error copying file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}

	frame, err := vision.Load(savedPath)
	if err != nil {
		log.Printf("Decode error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable or corrupt image"})
		return
	}
	log.Printf("Image decoded: %dx%d", frame.Width, frame.Height)

	dirtAssessment, err := dirt.Compute(frame)
	if err != nil {
		log.Printf("Dirt scoring error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cleanliness analysis failed"})
		return
	}

	tensor := vision.Preprocess(frame)
	prediction, err := damageOracle.Predict(c.Request.Context(), tensor)
	if err != nil {
		log.Printf("Oracle error: %v", err)
		var contractErr *models.InvalidPredictionError
		if errors.As(err, &contractErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Damage classifier returned an invalid prediction"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Damage classifier is unavailable"})
		return
	}

	verdict, err := decision.Decide(prediction, dirtAssessment)
	if err != nil {
		log.Printf("Decision error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Damage classifier returned an invalid prediction"})
		return
	}

	rep, err := report.Assemble(prediction, dirtAssessment, verdict)
	if err != nil {
		log.Printf("Report error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assemble report"})
		return
	}

	analysis := models.Analysis{
		ID:               analysisID,
		ImagePath:        savedPath,
		OriginalName:     header.Filename,
		PredictedClass:   prediction.Class,
		Confidence:       prediction.Confidence,
		Probabilities:    rep.Probabilities,
		MajorProbability: prediction.MajorPercent(),
		DirtScore:        dirtAssessment.Score,
		DirtLabel:        dirtAssessment.Label,
		Metrics:          dirtAssessment.Metrics,
		Status:           verdict.Status,
		EconomicTag:      verdict.EconomicTag,
		Rationale:        verdict.Rationale,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := database.DB.Create(&analysis).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save analysis"})
		return
	}
	log.Printf("Analysis %s saved: %s/%s", analysisID, verdict.Status, verdict.EconomicTag)

	c.JSON(http.StatusOK, gin.H{
		"id":         analysisID,
		"image_path": savedPath,
		"report":     rep,
	})
}
