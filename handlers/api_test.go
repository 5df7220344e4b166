package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxifit/database"
	"taxifit/models"
	"taxifit/oracle"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database.InitDatabase(":memory:")
	Configure(t.TempDir(), oracle.NewMock())

	router := gin.New()
	api := router.Group("/api")
	api.POST("/analyze", UploadAndAnalyze)
	api.GET("/history", GetAllAnalyses)
	api.GET("/history/:id", GetAnalysisById)
	api.DELETE("/history/:id", DeleteAnalysis)
	api.GET("/statistics", GetStatistics)
	return router
}

func multipartImage(t *testing.T, field, filename string) (*bytes.Buffer, string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 48, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 48; x++ {
			o := img.PixOffset(x, y)
			img.Pix[o] = uint8(x * 5)
			img.Pix[o+1] = uint8(y * 7)
			img.Pix[o+2] = uint8((x + y) * 3)
			img.Pix[o+3] = 0xff
		}
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	require.NoError(t, png.Encode(part, img))
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestAnalyzeHistoryAndStatisticsFlow(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartImage(t, "image", "car.png")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var analyzed struct {
		ID     string        `json:"id"`
		Report models.Report `json:"report"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &analyzed))
	require.NotEmpty(t, analyzed.ID)
	assert.NotEmpty(t, analyzed.Report.Status)
	assert.NotEmpty(t, analyzed.Report.Rationale)
	assert.NotEmpty(t, analyzed.Report.Assessment.Fitness)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var history struct {
		Data  []models.Analysis `json:"data"`
		Total int64             `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Equal(t, int64(1), history.Total)
	assert.Equal(t, analyzed.ID, history.Data[0].ID)
	assert.Equal(t, analyzed.Report.Status, history.Data[0].Status)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/history/"+analyzed.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/statistics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		TotalAnalyses int64 `json:"total_analyses"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.TotalAnalyses)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/history/"+analyzed.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/history/"+analyzed.ID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnalyzeRejectsMissingFile(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeRejectsUnsupportedExtension(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartImage(t, "image", "car.gif")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeRejectsCorruptImage(t *testing.T) {
	router := newTestRouter(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "car.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("not a real png"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
