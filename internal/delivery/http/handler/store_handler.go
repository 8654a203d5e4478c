package handler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	pkgerrors "github.com/store-locator/internal/pkg/errors"
	"github.com/store-locator/internal/pkg/utils"
	"github.com/store-locator/internal/pkg/validator"
	"github.com/store-locator/internal/usecase/dto"
)

const (
	nearestMaxAge = 30 * time.Minute
	detailsMaxAge = 24 * time.Hour
)

// StoreService - операции поиска магазинов, которые нужны обработчику
type StoreService interface {
	FindNearestStores(ctx context.Context, lat, lon float64, limit int) ([]dto.StoreResponse, error)
	GetStoreDetails(ctx context.Context, storeID int64) (*dto.StoreResponse, error)
}

// StoreHandler - обработчик запросов к каталогу магазинов
type StoreHandler struct {
	storeUC StoreService
	logger  *zap.Logger
}

// NewStoreHandler - создание нового StoreHandler
func NewStoreHandler(storeUC StoreService, logger *zap.Logger) *StoreHandler {
	return &StoreHandler{
		storeUC: storeUC,
		logger:  logger,
	}
}

// FindNearestStores godoc
// @Summary Ближайшие магазины
// @Description Возвращает магазины, упорядоченные по геодезическому расстоянию от точки запроса.
// @Tags Stores
// @Produce json
// @Param latitude query number true "Широта (-90..90)"
// @Param longitude query number true "Долгота (-180..180)"
// @Param limit query int false "Количество магазинов (1..20)" default(5)
// @Success 200 {object} utils.SuccessResponse{data=[]dto.StoreResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stores/nearest [get]
func (h *StoreHandler) FindNearestStores(c *fiber.Ctx) error {
	var req dto.NearestStoresRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, pkgerrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": "latitude, longitude and limit must be numeric",
		}))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	limit := req.LimitOrDefault()
	result, err := h.storeUC.FindNearestStores(c.Context(), *req.Latitude, *req.Longitude, limit)
	if err != nil {
		h.logFailure(c, err)
		return utils.SendError(c, err)
	}

	setMaxAge(c, nearestMaxAge)
	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result),
		Limit: limit,
	})
}

// GetStoreDetails godoc
// @Summary Детали магазина
// @Description Возвращает магазин по номеру каталога. Расстояния в ответе равны нулю.
// @Tags Stores
// @Produce json
// @Param storeId path int true "Номер магазина"
// @Success 200 {object} utils.SuccessResponse{data=dto.StoreResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stores/{storeId} [get]
func (h *StoreHandler) GetStoreDetails(c *fiber.Ctx) error {
	raw := c.Params("storeId")
	storeID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return utils.SendError(c, pkgerrors.NewValidation("storeId", raw, "Store ID must be a number"))
	}

	result, err := h.storeUC.GetStoreDetails(c.Context(), storeID)
	if err != nil {
		h.logFailure(c, err)
		return utils.SendError(c, err)
	}

	setMaxAge(c, detailsMaxAge)
	return utils.SendSuccess(c, result, nil)
}

// logFailure пишет причину серверных ошибок; клиент видит только общее сообщение
func (h *StoreHandler) logFailure(c *fiber.Ctx, err error) {
	switch pkgerrors.KindOf(err) {
	case pkgerrors.KindDataAccess, pkgerrors.KindUnexpected:
		h.logger.Error("Store request failed",
			zap.String("path", c.Path()),
			zap.String("kind", string(pkgerrors.KindOf(err))),
			zap.Error(err),
		)
	default:
		h.logger.Debug("Store request rejected", zap.String("path", c.Path()), zap.Error(err))
	}
}

func setMaxAge(c *fiber.Ctx, maxAge time.Duration) {
	c.Set(fiber.HeaderCacheControl, fmt.Sprintf("max-age=%d", int(maxAge.Seconds())))
}
