package controllers

import (
	"propshare/response"
	"propshare/services"

	"github.com/gin-gonic/gin"
)

type DocumentController struct {
	Documents *services.DocumentService
}

func NewDocumentController(documents *services.DocumentService) *DocumentController {
	return &DocumentController{Documents: documents}
}

// UploadDocument nhận multipart field "file" và tên hiển thị "name"
func (ctrl *DocumentController) UploadDocument(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	propertyID, ok := paramID(c, "id")
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Thiếu file tải lên")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Không đọc được file")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	doc, err := ctrl.Documents.Upload(c.Request.Context(), services.DocumentUpload{
		PropertyID:  propertyID,
		Name:        c.PostForm("name"),
		Filename:    fileHeader.Filename,
		ContentType: contentType,
		Size:        fileHeader.Size,
		UploadedBy:  userID,
		File:        file,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, doc)
}

func (ctrl *DocumentController) ListDocuments(c *gin.Context) {
	propertyID, ok := paramID(c, "id")
	if !ok {
		return
	}
	docs, err := ctrl.Documents.List(c.Request.Context(), propertyID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, docs)
}

func (ctrl *DocumentController) DeleteDocument(c *gin.Context) {
	propertyID, ok := paramID(c, "id")
	if !ok {
		return
	}
	docID, ok := paramID(c, "documentId")
	if !ok {
		return
	}
	if err := ctrl.Documents.Delete(c.Request.Context(), propertyID, docID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}
