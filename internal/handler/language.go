package handler

import (
	"errors"
	"net/http"

	"catalog-browser/internal/i18n"
	"catalog-browser/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// LanguageHandler reads and changes the client's display language
type LanguageHandler struct {
	detector *i18n.Detector
}

// NewLanguageHandler creates a new LanguageHandler
func NewLanguageHandler(detector *i18n.Detector) *LanguageHandler {
	return &LanguageHandler{detector: detector}
}

// GetLanguage returns the active language
// GET /api/v1/language
func (h *LanguageHandler) GetLanguage(c *gin.Context) {
	c.JSON(http.StatusOK, model.APIResponse{
		Code: 200,
		Data: h.view(c.GetString(LangKey)),
	})
}

// SetLanguage stores a new language preference
// PUT /api/v1/language (body: { "language": "es" })
func (h *LanguageHandler) SetLanguage(c *gin.Context) {
	var body struct {
		Language string `json:"language" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, model.APIResponse{
			Code:  400,
			Error: "无效的请求体",
		})
		return
	}

	lang, err := h.detector.Change(c.Request.Context(), c.GetString(ClientIDKey), body.Language)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, i18n.ErrUnsupportedLanguage) {
			status = http.StatusBadRequest
		}
		c.JSON(status, model.APIResponse{
			Code:  status,
			Error: err.Error(),
		})
		return
	}

	log.Info().Str("client", c.GetString(ClientIDKey)).Str("lang", lang).Msg("🌐 Language changed")

	c.JSON(http.StatusOK, model.APIResponse{
		Code: 200,
		Data: h.view(lang),
	})
}

func (h *LanguageHandler) view(lang string) model.LanguageView {
	b := h.detector.Bundle()
	return model.LanguageView{
		Language:  b.For(lang).Lang(),
		Default:   b.Fallback(),
		Supported: b.Supported(),
	}
}
