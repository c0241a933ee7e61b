package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-vault-api/internal/application/ports"
	domain "file-vault-api/internal/domain/share"
	"file-vault-api/internal/interface/api/rest/dto/share"
	"file-vault-api/internal/interface/api/rest/validator"
)

type ShareController struct {
	shareService ports.ShareService
	logger       *zap.Logger
}

func NewShareController(
	r *gin.Engine,
	shareService ports.ShareService,
	logger *zap.Logger,
) *ShareController {
	sc := &ShareController{
		shareService: shareService,
		logger:       logger,
	}

	r.POST(RouteShareRedeem, sc.RedeemDownloadHandler)

	return sc
}

// RedeemDownloadHandler records one download against a share link.
// The download path itself lives in the browse service; this endpoint
// is the admission gate it calls first.
func (sc *ShareController) RedeemDownloadHandler(c *gin.Context) {
	token := c.Param("token")
	if !validator.IsShareToken(token) {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid share token"},
		)
		return
	}

	var req share.RedeemRequest
	// body is optional for password-less shares
	_ = c.ShouldBindJSON(&req)

	out, err := sc.shareService.RedeemDownload(c.Request.Context(), token, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "share not found"})
		case errors.Is(err, domain.ErrInvalidPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		case errors.Is(err, domain.ErrInactive),
			errors.Is(err, domain.ErrExpired),
			errors.Is(err, domain.ErrDownloadLimitReached):
			c.JSON(http.StatusGone, gin.H{"error": err.Error()})
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to redeem download"},
			)
			sc.logger.Error("RedeemDownload() error", zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusOK, share.ToResponse(*out))
}
