package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub/internal/api/dto"
	ierr "github.com/learnhub/learnhub/internal/errors"
	"github.com/learnhub/learnhub/internal/logger"
	"github.com/learnhub/learnhub/internal/service"
	"github.com/learnhub/learnhub/internal/types"
)

type CouponHandler struct {
	couponService     service.CouponService
	validationService service.CouponValidationService
	logger            *logger.Logger
}

func NewCouponHandler(
	couponService service.CouponService,
	validationService service.CouponValidationService,
	logger *logger.Logger,
) *CouponHandler {
	return &CouponHandler{
		couponService:     couponService,
		validationService: validationService,
		logger:            logger,
	}
}

// @Summary List coupons
// @Description Lists all coupons
// @Tags Coupons
// @Produce json
// @Success 200 {object} dto.ListCouponsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /coupons [get]
func (h *CouponHandler) ListCoupons(c *gin.Context) {
	response, err := h.couponService.ListCoupons(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get a coupon by ID
// @Description Retrieves a coupon by ID
// @Tags Coupons
// @Produce json
// @Param id path int true "Coupon ID"
// @Success 200 {object} dto.CouponResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /coupons/{id} [get]
func (h *CouponHandler) GetCoupon(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	response, err := h.couponService.GetCoupon(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Create a new coupon
// @Description Creates a new coupon. New coupons start active.
// @Tags Coupons
// @Accept json
// @Produce json
// @Param coupon body dto.CreateCouponRequest true "Coupon request"
// @Success 201 {object} dto.CouponResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /coupons [post]
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req dto.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.couponService.CreateCoupon(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary Update a coupon
// @Description Updates a coupon. The code and usage counter cannot change.
// @Tags Coupons
// @Accept json
// @Produce json
// @Param id path int true "Coupon ID"
// @Param coupon body dto.UpdateCouponRequest true "Coupon request"
// @Success 200 {object} dto.CouponResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /coupons/{id} [put]
func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.couponService.UpdateCoupon(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Delete a coupon
// @Description Deletes a coupon and its usage records
// @Tags Coupons
// @Produce json
// @Param id path int true "Coupon ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /coupons/{id} [delete]
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.couponService.DeleteCoupon(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted successfully"})
}

// @Summary Toggle coupon status
// @Description Flips the active flag of a coupon
// @Tags Coupons
// @Produce json
// @Param id path int true "Coupon ID"
// @Success 200 {object} dto.CouponResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /coupons/{id}/toggle [patch]
func (h *CouponHandler) ToggleCouponStatus(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	response, err := h.couponService.ToggleCouponStatus(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get coupon usage history
// @Description Lists redemptions of a coupon, most recent first
// @Tags Coupons
// @Produce json
// @Param id path int true "Coupon ID"
// @Success 200 {object} dto.ListCouponUsageResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /coupons/{id}/usage [get]
func (h *CouponHandler) GetUsageHistory(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	response, err := h.couponService.GetUsageHistory(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get the active auto-apply coupon
// @Description Returns the sitewide coupon currently applied without a code
// @Tags Coupons
// @Produce json
// @Success 200 {object} dto.CouponResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /coupons/auto-apply [get]
func (h *CouponHandler) GetAutoApplyCoupon(c *gin.Context) {
	response, err := h.couponService.GetActiveAutoApplyCoupon(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Validate a coupon
// @Description Checks coupon eligibility for the authenticated user and
// @Description computes the discounted price without recording usage
// @Tags Coupons
// @Accept json
// @Produce json
// @Param request body dto.ValidateCouponRequest true "Validation request"
// @Success 200 {object} dto.CouponValidationResult
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /coupons/validate [post]
// @Security BearerAuth
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	var req dto.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	userID := types.GetUserID(c.Request.Context())
	result, err := h.validationService.ValidateAndCalculateDiscount(c.Request.Context(), req.Code, req.CourseID, userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Redeem a coupon
// @Description Re-validates and redeems a coupon for the authenticated user
// @Tags Coupons
// @Accept json
// @Produce json
// @Param request body dto.RedeemCouponRequest true "Redemption request"
// @Success 200 {object} dto.RedeemCouponResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /coupons/use [post]
// @Security BearerAuth
func (h *CouponHandler) UseCoupon(c *gin.Context) {
	var req dto.RedeemCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	userID := types.GetUserID(c.Request.Context())
	result, err := h.validationService.RedeemCoupon(c.Request.Context(), req.Code, req.CourseID, userID)
	if err != nil {
		c.Error(err)
		return
	}

	if !result.IsValid {
		c.JSON(http.StatusBadRequest, gin.H{"message": result.Message})
		return
	}

	c.JSON(http.StatusOK, dto.RedeemCouponResponse{
		Message:        "Coupon applied successfully",
		DiscountAmount: result.DiscountAmount,
		FinalPrice:     result.FinalPrice,
	})
}

func parseIDParam(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, ierr.NewError("invalid coupon ID").
			WithHint("Coupon ID must be a positive integer").
			Mark(ierr.ErrValidation)
	}
	return id, nil
}
