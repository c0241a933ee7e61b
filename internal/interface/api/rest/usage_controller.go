package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-vault-api/internal/application/ports"
	"file-vault-api/internal/infrastructure/jwt"
	"file-vault-api/internal/interface/api/rest/dto/usage"
	"file-vault-api/internal/interface/api/rest/middleware"
	"file-vault-api/internal/interface/api/rest/validator"
)

// UsageController serves the quota read path for upload-admission
// collaborators; fresh within one accounting cycle.
type UsageController struct {
	accountant ports.StorageAccountant
	logger     *zap.Logger
}

func NewUsageController(
	r *gin.Engine,
	accountant ports.StorageAccountant,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *UsageController {
	uc := &UsageController{
		accountant: accountant,
		logger:     logger,
	}

	r.GET(RouteUserUsage, middleware.AuthMiddleware(jwtService), uc.GetStorageUsageHandler)

	return uc
}

func (uc *UsageController) GetStorageUsageHandler(c *gin.Context) {
	ok, uuid := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	u, err := uc.accountant.StorageUsage(c.Request.Context(), uuid)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get storage usage"},
		)
		uc.logger.Error("StorageUsage() error", zap.Error(err))
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, usage.ToResponse(*u))
}
