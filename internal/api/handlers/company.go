package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okothvientrevor/ALOVAZE/internal/services"
	"github.com/okothvientrevor/ALOVAZE/internal/utils"
)

type CompanyHandler struct {
	companyService *services.CompanyService
}

func NewCompanyHandler(companyService *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

func (h *CompanyHandler) GetAll(c *gin.Context) {
	companies, err := h.companyService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SendData(c, http.StatusOK, companies)
}
