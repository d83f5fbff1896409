package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lexvault/config"
	"lexvault/middleware"
	"lexvault/models"
	"lexvault/services"
	"lexvault/utils"
)

type DocumentController struct {
	documentService *services.DocumentService
	storageService  *services.StorageService
}

func NewDocumentController(documentService *services.DocumentService, storageService *services.StorageService) *DocumentController {
	return &DocumentController{
		documentService: documentService,
		storageService:  storageService,
	}
}

// SetStatusRequest is the body for a status change.
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UploadDocument accepts a multipart upload, streams the blob to
// storage when storage is configured, then records the document.
func (dc *DocumentController) UploadDocument(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "File is required", nil)
		return
	}
	if config.AppConfig != nil && fileHeader.Size > config.AppConfig.MaxFileSize {
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "File exceeds the maximum allowed size", nil)
		return
	}

	docType := models.DocType(c.PostForm("doc_type"))
	if docType == "" {
		docType = docTypeFromExtension(fileHeader.Filename)
	}

	req := services.CreateDocumentRequest{
		Name:    fileHeader.Filename,
		DocType: docType,
		Size:    fileHeader.Size,
	}

	if dc.storageService != nil {
		file, err := fileHeader.Open()
		if err != nil {
			utils.BadRequestResponse(c, "Failed to read uploaded file", nil)
			return
		}
		defer file.Close()

		objectName := fmt.Sprintf("documents/%s/%s-%s", principal.ID, uuid.NewString(), fileHeader.Filename)
		blob, err := dc.storageService.Upload(c.Request.Context(), file, objectName)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadGateway, "Failed to store file", nil)
			return
		}
		req.B2FileID = blob.SHA1
		req.B2FileName = blob.ObjectName
		req.Size = blob.Size
	}

	doc, err := dc.documentService.CreateDocument(c.Request.Context(), principal, req)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Document uploaded", doc)
}

// ListDocuments lists non-trashed documents visible to the caller.
func (dc *DocumentController) ListDocuments(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	page, limit := parsePagination(c)
	filter := services.ListFilter{
		Status:  models.FileStatus(c.Query("status")),
		DocType: models.DocType(c.Query("type")),
		Page:    page,
		Limit:   limit,
	}

	docs, total, err := dc.documentService.ListDocuments(c.Request.Context(), principal, filter)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Documents retrieved", docs, buildPagination(page, limit, total))
}

// GetDocument fetches one document by id.
func (dc *DocumentController) GetDocument(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	doc, err := dc.documentService.GetDocument(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Document retrieved", doc)
}

// GetDownloadURL returns a signed URL for the document blob.
func (dc *DocumentController) GetDownloadURL(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	url, err := dc.documentService.DownloadURL(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Download URL generated", gin.H{"url": url})
}

// UpdateDocument renames or retypes a document.
func (dc *DocumentController) UpdateDocument(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	var req services.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	doc, err := dc.documentService.UpdateDocument(c.Request.Context(), principal, c.Param("id"), req)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Document updated", doc)
}

// SetStatus moves a document between active, pending and archived.
func (dc *DocumentController) SetStatus(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	doc, err := dc.documentService.SetStatus(c.Request.Context(), principal, c.Param("id"), models.FileStatus(req.Status))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Document status updated", doc)
}

// ToggleArchive archives or unarchives a document.
func (dc *DocumentController) ToggleArchive(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	doc, err := dc.documentService.ToggleArchive(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Document archive state toggled", doc)
}

// DeleteDocument soft deletes a document into the trash.
func (dc *DocumentController) DeleteDocument(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	doc, err := dc.documentService.SoftDelete(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Document moved to trash", doc)
}

func docTypeFromExtension(filename string) models.DocType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".doc", ".docx", ".odt", ".rtf":
		return models.DocTypeWord
	case ".pdf":
		return models.DocTypePDF
	case ".xls", ".xlsx", ".ods", ".csv":
		return models.DocTypeSpreadsheet
	}
	return ""
}
