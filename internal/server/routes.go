package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/motorline/partsbot/internal/dialog"
)

// chatRequest is the POST /api/chat body. An empty session id mints a new
// session, returned in the response so the client can continue the
// conversation.
type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

// enquiryStatus is the GET /api/enquiries/:ref body.
type enquiryStatus struct {
	ReferenceNumber string    `json:"reference_number"`
	ItemName        string    `json:"item_name"`
	ItemType        string    `json:"item_type"`
	ModelName       string    `json:"model_name,omitempty"`
	ContactName     string    `json:"contact_name"`
	ContactType     string    `json:"contact_type"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// registerRoutes sets up all API routes on the Gin router.
func registerRoutes(router *gin.Engine, d *dialog.Dispatcher, enquiries dialog.EnquiryStore) {
	router.POST("/api/chat", handleChat(d))
	router.GET("/api/enquiries/:ref", handleEnquiryStatus(enquiries))
	router.GET("/healthz", handleHealth())
}

func handleChat(d *dialog.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
			return
		}
		if req.SessionID == "" {
			req.SessionID = uuid.NewString()
		}

		resp := d.Handle(c.Request.Context(), req.SessionID, req.Message)
		c.JSON(http.StatusOK, resp)
	}
}

func handleEnquiryStatus(enquiries dialog.EnquiryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Param("ref")
		form, err := enquiries.FindByReference(ref)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}
		if form == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no enquiry with that reference"})
			return
		}
		c.JSON(http.StatusOK, enquiryStatus{
			ReferenceNumber: form.ReferenceNumber,
			ItemName:        form.ItemName,
			ItemType:        form.ItemType,
			ModelName:       form.ModelName,
			ContactName:     form.ContactName,
			ContactType:     form.ContactType,
			Status:          form.Status,
			CreatedAt:       form.CreatedAt,
		})
	}
}

func handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
