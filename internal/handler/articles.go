package handler

import (
	"net/http"

	"salestrack/internal/apierror"
	"salestrack/internal/dto"
	"salestrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ArticlesHandler struct{ svc service.ArticleService }

func NewArticlesHandler(svc service.ArticleService) *ArticlesHandler {
	return &ArticlesHandler{svc: svc}
}

// Create godoc
// @Summary      Create an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateArticleRequest true "Article payload"
// @Success      201 {object} dto.ArticleResponse
// @Failure      400 {object} apierror.ValidationError
// @Router       /v1/article [post]
func (h *ArticlesHandler) Create(c *gin.Context) {
	var req dto.CreateArticleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List articles
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        category query string false "Filter by category id"
// @Param        code     query string false "Filter by business code"
// @Param        limit    query int    false "Page size"
// @Param        offset   query int    false "Page offset"
// @Success      200 {object} dto.ArticleListResponse
// @Router       /v1/article [get]
func (h *ArticlesHandler) List(c *gin.Context) {
	var filter dto.ArticleFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ArticlesHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ArticlesHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.UpdateArticleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ArticlesHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
