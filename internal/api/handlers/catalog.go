package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hybrid-dispatch/internal/api/models"
	"hybrid-dispatch/internal/config"
	"hybrid-dispatch/internal/data"
)

// CatalogHandler serves the server-side datasets and plant presets.
type CatalogHandler struct {
	cfg *config.Config
}

func NewCatalogHandler(cfg *config.Config) *CatalogHandler {
	return &CatalogHandler{cfg: cfg}
}

// ListDatasets handles GET /api/v1/datasets.
func (h *CatalogHandler) ListDatasets(c *gin.Context) {
	datasets, err := data.ListDatasets(h.cfg.Data.DatasetDir)
	if err != nil {
		internalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, models.DatasetsResponse{Datasets: datasets, Count: len(datasets)})
}

// ListPlants handles GET /api/v1/plants.
func (h *CatalogHandler) ListPlants(c *gin.Context) {
	plants, err := config.ListPlants(h.cfg.Data.PlantDir)
	if err != nil {
		internalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, models.PlantsResponse{Plants: plants, Count: len(plants)})
}
