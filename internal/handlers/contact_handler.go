package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/radshield/radshield-web/internal/i18n"
	"github.com/radshield/radshield-web/internal/middleware"
	"github.com/radshield/radshield-web/internal/models"
	"github.com/radshield/radshield-web/internal/services"
)

type ContactHandler struct {
	service services.ContactServiceInterface
	msgs    *i18n.Catalog
}

func NewContactHandler(service services.ContactServiceInterface, msgs *i18n.Catalog) *ContactHandler {
	return &ContactHandler{service: service, msgs: msgs}
}

// SubmitContact handles POST /api/v1/contact
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	locale := middleware.GetLocale(c)

	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, h.msgs.T(locale, "error.invalid"),
			ParseValidationErrors(err, h.msgs, locale), err)
		return
	}

	resp, err := h.service.SubmitContactForm(c.Request.Context(), locale, c.ClientIP(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	if !resp.Success {
		status := http.StatusBadGateway
		if resp.Error == "captcha" {
			status = http.StatusBadRequest
		}
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}
