package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/mockinterview/internal/controller"
	"github.com/lshigami/mockinterview/internal/dto"
	"github.com/lshigami/mockinterview/internal/service"
)

type CVController struct {
	interviewService service.InterviewService
}

func NewCVController(is service.InterviewService) *CVController {
	return &CVController{interviewService: is}
}

// Analyze godoc
// @Summary Score a résumé
// @Description Heuristic ATS, keyword, formatting and clarity scores with improvement suggestions.
// @Tags CV Optimization
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param resume formData file true "Résumé (PDF or DOCX)"
// @Success 200 {object} dto.CVAnalysisResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /cv-optimization/analyze [post]
func (c *CVController) Analyze(ctx *gin.Context) {
	userID, ok := controller.RequireUserID(ctx)
	if !ok {
		return
	}
	fileHeader, err := ctx.FormFile("resume")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Resume file is required", Details: []string{err.Error()}})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		controller.RespondError(ctx, err, "Failed to read uploaded resume")
		return
	}
	defer file.Close()

	resp, err := c.interviewService.AnalyzeCV(userID, service.ResumeUpload{Filename: fileHeader.Filename, Content: file})
	if err != nil {
		controller.RespondError(ctx, err, "Failed to analyze resume")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
