package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/gokulanand247/ecommerce/initializers"
	"github.com/gokulanand247/ecommerce/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	maxImageSize      = 2 << 20 // 2MB per file
	maxUploadSize     = 5 << 20 // 5MB per request
	maxImagesPerBatch = 4
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

// currentUserID returns the authenticated subject id set by the auth
// middleware.
func currentUserID(ctx *gin.Context) (uint, bool) {
	userClaims, exists := ctx.Get("user")
	if !exists {
		return 0, false
	}
	claims, ok := userClaims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, false
	}
	return uint(id), true
}

func currentRole(ctx *gin.Context) string {
	userClaims, exists := ctx.Get("user")
	if !exists {
		return ""
	}
	claims, ok := userClaims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}

// catalogWriteAllowed rejects callers that are neither sellers nor admins.
func catalogWriteAllowed(ctx *gin.Context) bool {
	role := currentRole(ctx)
	if role != "seller" && role != "admin" {
		sendErrorResponse(ctx, http.StatusForbidden, "Seller or admin access required")
		return false
	}
	return true
}

// Product handlers
func CreateProduct(ctx *gin.Context) {
	if !catalogWriteAllowed(ctx) {
		return
	}

	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if product.Price > product.MRP {
		respondWithError(ctx, http.StatusBadRequest, "Price cannot exceed MRP", nil)
		return
	}

	// Sellers may only create products under their own shop.
	if currentRole(ctx) == "seller" {
		sellerID, ok := currentUserID(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "Seller not found in context")
			return
		}
		product.SellerID = &sellerID
	}

	if err := initializers.DB.Create(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

func UpdateProduct(ctx *gin.Context) {
	if !catalogWriteAllowed(ctx) {
		return
	}

	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch product", err)
		}
		return
	}

	if currentRole(ctx) == "seller" {
		sellerID, _ := currentUserID(ctx)
		if product.SellerID == nil || *product.SellerID != sellerID {
			sendErrorResponse(ctx, http.StatusForbidden, "Product belongs to another seller")
			return
		}
	}

	var update models.Product
	if err := ctx.ShouldBindJSON(&update); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if update.Price > update.MRP {
		respondWithError(ctx, http.StatusBadRequest, "Price cannot exceed MRP", nil)
		return
	}

	if err := initializers.DB.Model(&product).Updates(map[string]any{
		"name":        update.Name,
		"description": update.Description,
		"price":       update.Price,
		"mrp":         update.MRP,
		"discount":    update.Discount,
		"category":    update.Category,
		"images":      update.Images,
		"sizes":       update.Sizes,
		"colors":      update.Colors,
		"stock":       update.Stock,
		"is_active":   update.IsActive,
	}).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

func DeleteProduct(ctx *gin.Context) {
	if !catalogWriteAllowed(ctx) {
		return
	}

	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	if currentRole(ctx) == "seller" {
		var product models.Product
		if err := initializers.DB.First(&product, productId).Error; err != nil {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
			return
		}
		sellerID, _ := currentUserID(ctx)
		if product.SellerID == nil || *product.SellerID != sellerID {
			sendErrorResponse(ctx, http.StatusForbidden, "Product belongs to another seller")
			return
		}
	}

	result := initializers.DB.Unscoped().Delete(&models.Product{}, productId)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete product", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product deleted"})
}

// getAWSUploader returns a configured AWS S3 uploader
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

func UploadProductImages(ctx *gin.Context) {
	if !catalogWriteAllowed(ctx) {
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		respondWithError(ctx, http.StatusBadRequest, "No files uploaded", nil)
		return
	}
	if len(files) > maxImagesPerBatch {
		respondWithError(ctx, http.StatusBadRequest, fmt.Sprintf("At most %d images per upload", maxImagesPerBatch), nil)
		return
	}

	var totalSize int64
	for _, file := range files {
		if !allowedImageTypes[file.Header.Get("Content-Type")] {
			respondWithError(ctx, http.StatusBadRequest, "Only JPEG, PNG and WebP images are allowed", nil)
			return
		}
		if file.Size > maxImageSize {
			respondWithError(ctx, http.StatusBadRequest, "Each image must be at most 2MB", nil)
			return
		}
		totalSize += file.Size
	}
	if totalSize > maxUploadSize {
		respondWithError(ctx, http.StatusBadRequest, "Upload exceeds the 5MB limit", nil)
		return
	}

	productIdStr := ctx.PostForm("productId")
	if productIdStr == "" {
		respondWithError(ctx, http.StatusBadRequest, "Missing productId", nil)
		return
	}

	productId, err := strconv.Atoi(productIdStr)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid productId", err)
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate product", err)
		}
		return
	}

	if currentRole(ctx) == "seller" {
		sellerID, _ := currentUserID(ctx)
		if product.SellerID == nil || *product.SellerID != sellerID {
			sendErrorResponse(ctx, http.StatusForbidden, "Product belongs to another seller")
			return
		}
	}

	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	bucket := os.Getenv("S3_BUCKET")
	var uploadedUrls []string
	var failedUploads []string

	for _, file := range files {
		f, openErr := file.Open()
		if openErr != nil {
			log.Printf("Error opening file %s: %v", file.Filename, openErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		key := fmt.Sprintf("products/%d-%s%s", productId, uuid.NewString(), strings.ToLower(filepath.Ext(file.Filename)))

		result, uploadErr := uploader.Upload(context.TODO(), &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(key),
			Body:        f,
			ACL:         "public-read",
			ContentType: aws.String(file.Header.Get("Content-Type")),
		})
		f.Close()

		if uploadErr != nil {
			log.Printf("Error uploading file %s: %v", file.Filename, uploadErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		uploadedUrls = append(uploadedUrls, result.Location)
	}

	if len(uploadedUrls) > 0 {
		product.Images = append(product.Images, uploadedUrls...)
		if err := initializers.DB.Model(&product).Update("images", product.Images).Error; err != nil {
			log.Printf("Error saving image URLs to database: %v", err)
		}
	}

	response := gin.H{
		"message": "Files processed",
		"urls":    uploadedUrls,
	}

	if len(failedUploads) > 0 {
		response["failed"] = failedUploads
	}

	ctx.JSON(http.StatusOK, response)
}

func GetProducts(ctx *gin.Context) {
	var products []models.Product

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset := (page - 1) * limit

	// Storefront listings only show visible products.
	query := initializers.DB.Where("is_active = ?", true)
	countQuery := initializers.DB.Model(&models.Product{}).Where("is_active = ?", true)

	if search := ctx.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
		countQuery = countQuery.Where("name LIKE ?", "%"+search+"%")
	}
	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
		countQuery = countQuery.Where("category = ?", category)
	}

	result := query.Limit(limit).Offset(offset).Order("created_at DESC").Find(&products)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", result.Error)
		return
	}

	var count int64
	countQuery.Count(&count)

	ctx.JSON(http.StatusOK, gin.H{
		"products": products,
		"metadata": gin.H{
			"total": count,
			"page":  page,
			"limit": limit,
		},
	})
}

func GetProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var product models.Product
	result := initializers.DB.First(&product, productId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", result.Error)
		}
		return
	}

	ctx.JSON(http.StatusOK, product)
}
