package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/mockinterview/internal/controller"
	"github.com/lshigami/mockinterview/internal/dto"
	"github.com/lshigami/mockinterview/internal/service"
)

type InterviewController struct {
	interviewService service.InterviewService
}

func NewInterviewController(is service.InterviewService) *InterviewController {
	return &InterviewController{interviewService: is}
}

// StartInterview godoc
// @Summary Start a new mock interview
// @Description Creates an interview for the job. An optional PDF or DOCX résumé is stored and used to tailor questions.
// @Tags Interview
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param job_title formData string true "Job title"
// @Param job_description formData string true "Job description"
// @Param resume formData file false "Résumé (PDF or DOCX)"
// @Success 200 {object} dto.StartInterviewResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /start-interview [post]
func (c *InterviewController) StartInterview(ctx *gin.Context) {
	userID, ok := controller.RequireUserID(ctx)
	if !ok {
		return
	}
	var form dto.StartInterviewForm
	if err := ctx.ShouldBind(&form); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid form data", Details: []string{err.Error()}})
		return
	}

	var upload *service.ResumeUpload
	fileHeader, err := ctx.FormFile("resume")
	switch {
	case err == nil:
		file, openErr := fileHeader.Open()
		if openErr != nil {
			controller.RespondError(ctx, openErr, "Failed to read uploaded resume")
			return
		}
		defer file.Close()
		upload = &service.ResumeUpload{Filename: fileHeader.Filename, Content: file}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// no résumé
	default:
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid resume upload", Details: []string{err.Error()}})
		return
	}

	resp, err := c.interviewService.Start(userID, form.JobTitle, form.JobDescription, upload)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to start interview")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// NextQuestion godoc
// @Summary Get the next interview question
// @Description Returns {"end": true} once the question limit is reached or the interview has concluded.
// @Tags Interview
// @Produce json
// @Security BearerAuth
// @Param interview_id query int true "Interview ID"
// @Success 200 {object} dto.NextQuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Interview not found"
// @Failure 502 {object} dto.ErrorResponse "AI service error"
// @Router /next-question [get]
func (c *InterviewController) NextQuestion(ctx *gin.Context) {
	userID, ok := controller.RequireUserID(ctx)
	if !ok {
		return
	}
	interviewID, ok := bindInterviewID(ctx)
	if !ok {
		return
	}
	resp, err := c.interviewService.NextQuestion(ctx.Request.Context(), userID, interviewID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to generate question")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitAnswer godoc
// @Summary Submit an answer for evaluation
// @Tags Interview
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SubmitAnswerRequest true "Question and answer"
// @Success 200 {object} dto.EvaluationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Interview not found"
// @Failure 409 {object} dto.ErrorResponse "Interview already complete"
// @Failure 502 {object} dto.ErrorResponse "AI service error"
// @Router /submit-answer [post]
func (c *InterviewController) SubmitAnswer(ctx *gin.Context) {
	userID, ok := controller.RequireUserID(ctx)
	if !ok {
		return
	}
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.interviewService.SubmitAnswer(ctx.Request.Context(), userID, req.InterviewID, req.Question, req.Answer)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to evaluate answer")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SkipQuestion godoc
// @Summary Skip the current question
// @Description Records the question with an empty answer and a score of 0.
// @Tags Interview
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SkipQuestionRequest true "Question being skipped"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Interview not found"
// @Failure 409 {object} dto.ErrorResponse "Interview already complete"
// @Router /skip-question [post]
func (c *InterviewController) SkipQuestion(ctx *gin.Context) {
	userID, ok := controller.RequireUserID(ctx)
	if !ok {
		return
	}
	var req dto.SkipQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if err := c.interviewService.Skip(userID, req.InterviewID, req.Question); err != nil {
		controller.RespondError(ctx, err, "Failed to skip question")
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: service.QuestionSkippedMsg})
}

// FinalFeedback godoc
// @Summary Get the final interview summary
// @Description Averages the recorded scores and stores the summary on the interview the first time it is requested.
// @Tags Interview
// @Produce json
// @Security BearerAuth
// @Param interview_id query int true "Interview ID"
// @Success 200 {object} dto.FinalFeedbackResponse
// @Failure 404 {object} dto.ErrorResponse "Interview not found"
// @Router /final-feedback [get]
func (c *InterviewController) FinalFeedback(ctx *gin.Context) {
	userID, ok := controller.RequireUserID(ctx)
	if !ok {
		return
	}
	interviewID, ok := bindInterviewID(ctx)
	if !ok {
		return
	}
	resp, err := c.interviewService.FinalFeedback(userID, interviewID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to compute final feedback")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// EndInterview godoc
// @Summary End the interview early
// @Tags Interview
// @Produce json
// @Security BearerAuth
// @Param interview_id query int true "Interview ID"
// @Success 200 {object} dto.EndInterviewResponse
// @Failure 404 {object} dto.ErrorResponse "Interview not found"
// @Router /end-interview [post]
func (c *InterviewController) EndInterview(ctx *gin.Context) {
	userID, ok := controller.RequireUserID(ctx)
	if !ok {
		return
	}
	interviewID, ok := bindInterviewID(ctx)
	if !ok {
		return
	}
	resp, err := c.interviewService.End(userID, interviewID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to end interview")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// MyInterviews godoc
// @Summary List completed interviews
// @Description Newest first. Only interviews with a final score are listed.
// @Tags Interview
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.InterviewHistoryItem
// @Failure 401 {object} dto.ErrorResponse
// @Router /my-interviews [get]
func (c *InterviewController) MyInterviews(ctx *gin.Context) {
	userID, ok := controller.RequireUserID(ctx)
	if !ok {
		return
	}
	items, err := c.interviewService.History(userID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve interviews")
		return
	}
	ctx.JSON(http.StatusOK, items)
}

func bindInterviewID(ctx *gin.Context) (uint, bool) {
	var q dto.InterviewQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid interview_id", Details: []string{err.Error()}})
		return 0, false
	}
	return q.InterviewID, true
}
