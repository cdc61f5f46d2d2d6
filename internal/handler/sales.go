package handler

import (
	"net/http"

	"salestrack/internal/apierror"
	"salestrack/internal/dto"
	"salestrack/internal/middleware"
	"salestrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// List godoc
// @Summary      List sales
// @Description  Paginated sale listing. When article_id is supplied the response also carries the per-article rollup: total revenue, profit and last selling date, computed over the whole filtered set.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        article_id query string false "Restrict to one article and include aggregates"
// @Param        ordering   query string false "id | date | quantity | unit_selling_price | total_selling_price, '-' prefix for descending"
// @Param        limit      query int    false "Page size"
// @Param        offset     query int    false "Page offset"
// @Success      200 {object} dto.SaleAggregatedListResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/sale [get]
func (h *SalesHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if !bindQuery(c, &filter) {
		return
	}
	result, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assembleSaleList(result))
}

// assembleSaleList builds the paginated envelope. The aggregate fields are
// present exactly when the article_id filter was supplied — their presence is
// part of the contract, so two envelope shapes exist.
func assembleSaleList(r *dto.SaleListResult) interface{} {
	next, previous := service.PageTokens(r.Count, r.Limit, r.Offset)
	if r.Aggregates == nil {
		return dto.SaleListResponse{
			Count: r.Count, Next: next, Previous: previous, Results: r.Results,
		}
	}
	return dto.SaleAggregatedListResponse{
		Count:          r.Count,
		Next:           next,
		Previous:       previous,
		SaleAggregates: *r.Aggregates,
		Results:        r.Results,
	}
}

// GetByID godoc
// @Summary      Retrieve one sale
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Sale id"
// @Success      200 {object} dto.SaleResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/sale/{id} [get]
func (h *SalesHandler) GetByID(c *gin.Context) {
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

// Create godoc
// @Summary      Record a sale
// @Description  Creates a sale. The author defaults to the authenticated caller when omitted.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateSaleRequest true "Sale payload"
// @Success      201 {object} dto.SaleResponse
// @Failure      400 {object} apierror.ValidationError
// @Router       /v1/sale [post]
func (h *SalesHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	callerID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Create(c.Request.Context(), callerID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary      Update a sale
// @Description  Only the sale's author may update it.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                true "Sale id"
// @Param        body body dto.UpdateSaleRequest true "Fields to change"
// @Success      200 {object} dto.SaleResponse
// @Failure      403 {object} apierror.APIError
// @Router       /v1/sale/{id} [put]
func (h *SalesHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.UpdateSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	callerID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Update(c.Request.Context(), callerID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Delete a sale
// @Description  Only the sale's author may delete it.
// @Tags         sales
// @Security     BearerAuth
// @Param        id path string true "Sale id"
// @Success      204
// @Failure      403 {object} apierror.APIError
// @Router       /v1/sale/{id} [delete]
func (h *SalesHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	claims := middleware.GetClaims(c)
	callerID, _ := uuid.Parse(claims.UserID)

	if err := h.svc.Delete(c.Request.Context(), callerID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
