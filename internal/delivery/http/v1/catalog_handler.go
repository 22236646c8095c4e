package v1

import (
	"net/http"

	"employee-onboarding-backend/internal/delivery/http/response"
	"employee-onboarding-backend/internal/domain"
	"employee-onboarding-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	onboardingUC domain.OnboardingUsecase
}

func NewCatalogHandler(r *gin.RouterGroup, onboardingUC domain.OnboardingUsecase) {
	handler := &CatalogHandler{onboardingUC: onboardingUC}

	r.GET("/steps", handler.Steps)
	r.GET("/catalog", handler.Catalog)
	r.GET("/catalog/managers", handler.Managers)
}

// Steps godoc
// @Summary      Wizard steps
// @Description  The five steps with the titles the progress indicator shows
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.StepInfo}
// @Router       /onboarding/steps [get]
func (h *CatalogHandler) Steps(c *gin.Context) {
	response.Success(c, http.StatusOK, "Onboarding steps", h.onboardingUC.Steps())
}

// Catalog godoc
// @Summary      Lookup tables
// @Description  Departments, job types, relationships, department skills and managers
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Catalog}
// @Router       /onboarding/catalog [get]
func (h *CatalogHandler) Catalog(c *gin.Context) {
	response.Success(c, http.StatusOK, "Onboarding catalog", h.onboardingUC.Catalog())
}

// Managers godoc
// @Summary      Managers of a department
// @Tags         catalog
// @Produce      json
// @Param        department  query     string  true  "Department name"
// @Success      200  {object}  response.Response{data=[]domain.Manager}
// @Failure      400  {object}  response.Response
// @Router       /onboarding/catalog/managers [get]
func (h *CatalogHandler) Managers(c *gin.Context) {
	department := c.Query("department")
	if department == "" {
		c.Error(apperror.BadRequest("department query parameter is required"))
		return
	}
	managers, err := h.onboardingUC.ManagersFor(domain.Department(department))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Managers", managers)
}
