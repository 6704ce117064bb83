package api

import (
	"net/http"

	resdto "studio-ops/internal/handler/dto/response"
	"studio-ops/internal/infra"
	"studio-ops/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PackageHandler struct {
	packageQueries queries.PackageQueries
}

func NewPackageHandler(packageQueries queries.PackageQueries) *PackageHandler {
	return &PackageHandler{
		packageQueries: packageQueries,
	}
}

// @Summary List package templates
// @Description List package templates available for assignment
// @Tags packages
// @Produce json
// @Security BearerAuth
// @Param include_inactive query bool false "Include retired templates"
// @Success 200 {array} resdto.PackageResponse
// @Failure 401 {object} map[string]string
// @Router /packages [get]
func (h *PackageHandler) ListPackages(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	views, err := h.packageQueries.List(c.Request.Context(), includeInactive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromPackageViews(views))
}

// @Summary Get package template
// @Description Get a package template by ID
// @Tags packages
// @Produce json
// @Security BearerAuth
// @Param id path string true "Package template ID"
// @Success 200 {object} resdto.PackageResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /packages/{id} [get]
func (h *PackageHandler) GetPackage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid package ID format",
		})
		return
	}

	view, err := h.packageQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Package not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromPackageView(view))
}
