package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taxifit/database"
	"taxifit/models"
)

func GetAllAnalyses(c *gin.Context) {
	var analyses []models.Analysis

	limitStr := c.DefaultQuery("limit", "50")
	offsetStr := c.DefaultQuery("offset", "0")

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 50
	}

	offset, err := strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		offset = 0
	}

	result := database.DB.Order("created_at DESC").Limit(limit).Offset(offset).Find(&analyses)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analyses"})
		return
	}

	var total int64
	database.DB.Model(&models.Analysis{}).Count(&total)

	c.JSON(http.StatusOK, gin.H{
		"data":   analyses,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func GetAnalysisById(c *gin.Context) {
	id := c.Param("id")

	var analysis models.Analysis
	result := database.DB.First(&analysis, "id = ?", id)

	if result.Error != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

func DeleteAnalysis(c *gin.Context) {
	id := c.Param("id")

	result := database.DB.Delete(&models.Analysis{}, "id = ?", id)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete analysis"})
		return
	}

	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Analysis deleted successfully"})
}

func GetStatistics(c *gin.Context) {
	var stats struct {
		TotalAnalyses   int64   `json:"total_analyses"`
		TaxiReady       int64   `json:"taxi_ready"`
		ConditionalTaxi int64   `json:"conditional_taxi"`
		RepairRequired  int64   `json:"repair_required"`
		TaxiBanned      int64   `json:"taxi_banned"`
		AvgDirtScore    float64 `json:"avg_dirt_score"`
		AvgMajorProb    float64 `json:"avg_major_probability"`
	}

	database.DB.Model(&models.Analysis{}).Count(&stats.TotalAnalyses)
	database.DB.Model(&models.Analysis{}).Where("status = ?", models.TaxiReady).Count(&stats.TaxiReady)
	database.DB.Model(&models.Analysis{}).Where("status = ?", models.ConditionalTaxi).Count(&stats.ConditionalTaxi)
	database.DB.Model(&models.Analysis{}).Where("status = ?", models.RepairRequired).Count(&stats.RepairRequired)
	database.DB.Model(&models.Analysis{}).Where("status = ?", models.TaxiBanned).Count(&stats.TaxiBanned)

	var avgDirt *float64
	database.DB.Model(&models.Analysis{}).Select("AVG(dirt_score)").Scan(&avgDirt)
	if avgDirt != nil {
		stats.AvgDirtScore = *avgDirt
	}

	var avgMajor *float64
	database.DB.Model(&models.Analysis{}).Select("AVG(major_probability)").Scan(&avgMajor)
	if avgMajor != nil {
		stats.AvgMajorProb = *avgMajor
	}

	c.JSON(http.StatusOK, stats)
}
