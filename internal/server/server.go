// Package server implements the food analysis service the client talks to.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxImageBytes caps uploaded photos.
const maxImageBytes = 10 << 20

// NoResponseText is returned when the model produced no text.
const NoResponseText = "No valid response generated."

// DefaultOrigins are always allowed by CORS.
var DefaultOrigins = []string{"http://localhost:5173"}

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Analyzer produces a nutrition report for a photo.
type Analyzer interface {
	Analyze(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// Handler serves the analysis routes.
type Handler struct {
	analyzer Analyzer
}

// NewHandler creates a handler backed by analyzer.
func NewHandler(analyzer Analyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

// NewRouter wires the analysis routes, CORS and request logging.
func NewRouter(analyzer Analyzer, origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     mergeOrigins(origins),
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := NewHandler(analyzer)
	r.POST("/analyze_food", h.AnalyzeFood)
	r.GET("/health", h.Health)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return r
}

// AnalyzeFood handles POST /analyze_food.
func (h *Handler) AnalyzeFood(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided in request"})
		return
	}

	if err := validateImage(header); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lang := c.DefaultPostForm("language", "en")

	data, err := readUpload(header)
	if err != nil {
		h.fail(c, err)
		return
	}

	prompt, err := BuildPrompt(lang)
	if err != nil {
		h.fail(c, err)
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}

	text, err := h.analyzer.Analyze(c.Request.Context(), prompt, data, mimeType)
	if err != nil {
		h.fail(c, err)
		return
	}
	if strings.TrimSpace(text) == "" {
		slog.Warn("No valid response generated by analyzer", "request_id", requestID(c))
		text = NoResponseText
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"response": text,
	})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *Handler) fail(c *gin.Context, err error) {
	slog.Error("Error processing request", "request_id", requestID(c), "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"status": "error",
		"error":  err.Error(),
	})
}

// validateImage rejects missing names and unsupported extensions.
func validateImage(header *multipart.FileHeader) error {
	if header == nil {
		return errors.New("No image file provided")
	}
	if header.Filename == "" {
		return errors.New("No selected file")
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(header.Filename))] {
		return errors.New("Invalid file type. Only PNG, JPG, and JPEG are allowed")
	}
	return nil
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image too large (max %d bytes)", maxImageBytes)
	}
	return data, nil
}

func mergeOrigins(extra []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, o := range append(append([]string{}, DefaultOrigins...), extra...) {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if seen[o] || !(strings.HasPrefix(o, "http://") || strings.HasPrefix(o, "https://")) {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}
	return out
}

const requestIDKey = "request_id"

// requestLogger tags each request with an ID and logs it when done.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)

		start := time.Now()
		c.Next()

		slog.Info("Request handled",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
