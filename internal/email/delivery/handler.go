package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	emaildomain "atix-backend/internal/email/domain"
	emaildto "atix-backend/internal/email/dto"
	"atix-backend/internal/email/usecase"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// EmailHandler exposes the email pipeline endpoints
type EmailHandler struct {
	emailUsecase usecase.EmailUsecase
}

// NewEmailHandler creates a new instance of EmailHandler
func NewEmailHandler(emailUsecase usecase.EmailUsecase) *EmailHandler {
	return &EmailHandler{emailUsecase: emailUsecase}
}

// respondError maps domain errors onto HTTP statuses
func respondError(c *gin.Context, err error) {
	var validationErr *emaildomain.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "field": validationErr.Field})
		return
	}
	var authErr *emaildomain.AuthorizationError
	if errors.As(err, &authErr) {
		c.JSON(http.StatusForbidden, gin.H{"error": authErr.Error(), "unauthorized": authErr.Unauthorized()})
		return
	}
	if errors.Is(err, emaildomain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func currentUserID(c *gin.Context) string {
	return c.GetString("userID")
}

func (h *EmailHandler) List(c *gin.Context) {
	query := c.Query("q")
	sort := usecase.SortMode(c.DefaultQuery("sort", string(usecase.SortNewest)))

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultListLimit)))
	if err != nil || limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	emails, total, err := h.emailUsecase.ListEmails(currentUserID(c), query, sort, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, emaildto.EmailsResponse{
		Emails: emails,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *EmailHandler) ImportJSON(c *gin.Context) {
	var records []emaildto.ImportRecord
	if err := c.ShouldBindJSON(&records); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be a JSON array of email records"})
		return
	}

	imported, err := h.emailUsecase.ImportJSON(currentUserID(c), records)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": imported, "total": len(records)})
}

func (h *EmailHandler) ImportGmail(c *gin.Context) {
	var req emaildto.GmailImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.emailUsecase.ImportFromGmail(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *EmailHandler) Process(c *gin.Context) {
	var req emaildto.ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.emailUsecase.ProcessEmails(c.Request.Context(), currentUserID(c), req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmailHandler) BoardTasks(c *gin.Context) {
	emails, err := h.emailUsecase.ListBoardTasks(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": emails})
}

func (h *EmailHandler) Move(c *gin.Context) {
	var req emaildto.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.emailUsecase.MoveCards(currentUserID(c), emaildomain.KanbanStatus(req.Status), req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": updated})
}

func (h *EmailHandler) Update(c *gin.Context) {
	var req emaildto.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, err := h.emailUsecase.UpdateEmail(currentUserID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, email)
}

// Delete dispatches on the request body: a single id, an id list, or the
// delete-all flag.
func (h *EmailHandler) Delete(c *gin.Context) {
	var req emaildto.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := currentUserID(c)
	switch {
	case req.DeleteAll:
		deleted, err := h.emailUsecase.DeleteAllEmails(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": deleted})

	case len(req.IDs) > 0:
		deleted, err := h.emailUsecase.DeleteEmails(userID, req.IDs)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": deleted})

	case req.ID != "":
		if err := h.emailUsecase.DeleteEmail(userID, req.ID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": 1})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "one of id, ids or deleteAll is required"})
	}
}

func (h *EmailHandler) DeleteOne(c *gin.Context) {
	if err := h.emailUsecase.DeleteEmail(currentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": 1})
}

func (h *EmailHandler) Stats(c *gin.Context) {
	stats, err := h.emailUsecase.GetStats(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
