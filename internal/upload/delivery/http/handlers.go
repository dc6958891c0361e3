package http

import (
	"github.com/gin-gonic/gin"

	"spendly/internal/upload"
	"spendly/pkg/response"
)

// Upload godoc
// @Summary     Upload a bank statement or payslip
// @Description Stores the file under a generated name. Pass the returned path as file_path on /chat.
// @Tags        Upload
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "CSV, TXT or PDF document"
// @Success     200 {object} uploadResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     413 {object} response.Resp "File too large"
// @Router      /upload [POST]
func (h *handler) Upload(c *gin.Context) {
	ctx := c.Request.Context()

	fh, err := h.processUploadReq(c)
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	src, err := fh.Open()
	if err != nil {
		h.l.Errorf(ctx, "upload.Open: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}
	defer src.Close()

	file, err := h.uc.Save(ctx, upload.SaveInput{
		Filename: fh.Filename,
		Size:     fh.Size,
		Content:  src,
	})
	if err != nil {
		h.l.Warnf(ctx, "uc.Save: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newUploadResp(file))
}
