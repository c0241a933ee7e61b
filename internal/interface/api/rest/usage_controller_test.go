package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "file-vault-api/internal/domain/user"
	"file-vault-api/internal/infrastructure/jwt"
	"file-vault-api/internal/interface/api/rest/middleware"
)

type fakeAccountant struct {
	StorageUsageFunc func(ctx context.Context, userUUID domain.UUID) (*domain.Usage, error)
}

func (f *fakeAccountant) Enqueue(id domain.ID) {}
func (f *fakeAccountant) Recompute(ctx context.Context, id domain.ID) error { return nil }
func (f *fakeAccountant) Worker(ctx context.Context) {}
func (f *fakeAccountant) StorageUsage(ctx context.Context, userUUID domain.UUID) (*domain.Usage, error) {
	return f.StorageUsageFunc(ctx, userUUID)
}

func newUsageRouter(t *testing.T, acc *fakeAccountant, jwtService *jwt.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	uc := &UsageController{
		accountant: acc,
		logger:     zap.NewNop(),
	}
	r.GET(RouteUserUsage, middleware.AuthMiddleware(jwtService), uc.GetStorageUsageHandler)
	return r
}

func doGET(t *testing.T, r *gin.Engine, path, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestUsageController_GetStorageUsageHandler(t *testing.T) {
	jwtService := jwt.New("test-secret")
	token, err := jwtService.GenerateJWT(uuid.NewString(), "service", time.Hour)
	require.NoError(t, err)

	known := uuid.New()
	acc := &fakeAccountant{
		StorageUsageFunc: func(ctx context.Context, userUUID domain.UUID) (*domain.Usage, error) {
			if userUUID == known {
				return &domain.Usage{Used: 300, Limit: 1000}, nil
			}
			return nil, nil
		},
	}
	r := newUsageRouter(t, acc, jwtService)

	t.Run("ok", func(t *testing.T) {
		rr := doGET(t, r, "/api/v1/users/"+known.String()+"/usage", token)
		require.Equal(t, http.StatusOK, rr.Code)

		var body map[string]uint64
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, uint64(300), body["used"])
		assert.Equal(t, uint64(1000), body["limit"])
		assert.Equal(t, uint64(700), body["available"])
	})

	t.Run("unknown user", func(t *testing.T) {
		rr := doGET(t, r, "/api/v1/users/"+uuid.NewString()+"/usage", token)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("malformed uuid", func(t *testing.T) {
		rr := doGET(t, r, "/api/v1/users/not-a-uuid/usage", token)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		rr := doGET(t, r, "/api/v1/users/"+known.String()+"/usage", "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rr := doGET(t, r, "/api/v1/users/"+known.String()+"/usage", "not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestUsageController_GetStorageUsageHandler_StoreError(t *testing.T) {
	jwtService := jwt.New("test-secret")
	token, err := jwtService.GenerateJWT(uuid.NewString(), "service", time.Hour)
	require.NoError(t, err)

	acc := &fakeAccountant{
		StorageUsageFunc: func(ctx context.Context, userUUID domain.UUID) (*domain.Usage, error) {
			return nil, errors.New("store unavailable")
		},
	}
	r := newUsageRouter(t, acc, jwtService)

	rr := doGET(t, r, "/api/v1/users/"+uuid.NewString()+"/usage", token)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestUsageController_OverQuotaHasZeroAvailable(t *testing.T) {
	jwtService := jwt.New("test-secret")
	token, err := jwtService.GenerateJWT(uuid.NewString(), "service", time.Hour)
	require.NoError(t, err)

	acc := &fakeAccountant{
		StorageUsageFunc: func(ctx context.Context, userUUID domain.UUID) (*domain.Usage, error) {
			return &domain.Usage{Used: 2000, Limit: 1000}, nil
		},
	}
	r := newUsageRouter(t, acc, jwtService)

	rr := doGET(t, r, "/api/v1/users/"+uuid.NewString()+"/usage", token)
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]uint64
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, uint64(0), body["available"])
}
