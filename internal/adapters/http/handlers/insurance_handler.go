package handlers

import (
	"errors"
	"strconv"

	"washlab-backend/internal/core/domain"
	"washlab-backend/internal/core/services"
	"washlab-backend/internal/pkg/pagination"
	"washlab-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// InsuranceHandler handles insurance policy and claim endpoints
type InsuranceHandler struct {
	insuranceService *services.InsuranceService
}

// NewInsuranceHandler creates a new insurance handler
func NewInsuranceHandler(insuranceService *services.InsuranceService) *InsuranceHandler {
	return &InsuranceHandler{insuranceService: insuranceService}
}

// CreatePolicy handles policy creation
// @Summary Create insurance policy
// @Tags Insurance
// @Accept json
// @Produce json
// @Param body body services.CreatePolicyInput true "Policy data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /insurance/policies [post]
func (h *InsuranceHandler) CreatePolicy(c *fiber.Ctx) error {
	var input services.CreatePolicyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	policy, err := h.insuranceService.CreatePolicy(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEntry):
			return response.Conflict(c, "Policy number already exists")
		case errors.Is(err, domain.ErrAssetNotFound):
			return response.NotFound(c, "Asset not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Provider and policy number are required")
		default:
			return response.InternalServerError(c, "Failed to create policy")
		}
	}

	return response.Created(c, "Policy created", fiber.Map{"policy": policy})
}

// ListPolicies handles policy listing
// @Summary List insurance policies
// @Tags Insurance
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /insurance/policies [get]
func (h *InsuranceHandler) ListPolicies(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	policies, total, err := h.insuranceService.ListPolicies(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list policies")
	}

	return response.Success(c, "Policies retrieved", fiber.Map{
		"policies": policies,
		"meta":     pagination.GetMeta(params, total),
	})
}

// GetPolicy handles single policy retrieval
// @Summary Get insurance policy
// @Tags Insurance
// @Produce json
// @Param id path int true "Policy ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /insurance/policies/{id} [get]
func (h *InsuranceHandler) GetPolicy(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid policy ID")
	}

	policy, err := h.insuranceService.GetPolicy(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrPolicyNotFound) {
			return response.NotFound(c, "Policy not found")
		}
		return response.InternalServerError(c, "Failed to get policy")
	}

	return response.Success(c, "Policy retrieved", fiber.Map{"policy": policy})
}

// DeletePolicy handles policy deletion
// @Summary Delete insurance policy
// @Tags Insurance
// @Produce json
// @Param id path int true "Policy ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /insurance/policies/{id} [delete]
func (h *InsuranceHandler) DeletePolicy(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid policy ID")
	}

	if err := h.insuranceService.DeletePolicy(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrPolicyNotFound) {
			return response.NotFound(c, "Policy not found")
		}
		return response.InternalServerError(c, "Failed to delete policy")
	}

	return response.Success(c, "Policy deleted", nil)
}

// CreateClaim handles claim filing
// @Summary File insurance claim
// @Tags Insurance
// @Accept json
// @Produce json
// @Param body body services.CreateClaimInput true "Claim data"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /insurance/claims [post]
func (h *InsuranceHandler) CreateClaim(c *fiber.Ctx) error {
	var input services.CreateClaimInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	claim, err := h.insuranceService.CreateClaim(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPolicyNotFound):
			return response.NotFound(c, "Policy not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "policyId and a positive claim amount are required")
		default:
			return response.InternalServerError(c, "Failed to file claim")
		}
	}

	return response.Created(c, "Claim filed", fiber.Map{"claim": claim})
}

// ListClaims handles per-policy claim listing
// @Summary List claims for a policy
// @Tags Insurance
// @Produce json
// @Param id path int true "Policy ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /insurance/policies/{id}/claims [get]
func (h *InsuranceHandler) ListClaims(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid policy ID")
	}

	claims, err := h.insuranceService.ListClaims(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrPolicyNotFound) {
			return response.NotFound(c, "Policy not found")
		}
		return response.InternalServerError(c, "Failed to list claims")
	}

	return response.Success(c, "Claims retrieved", fiber.Map{"claims": claims})
}

// UpdateClaim handles claim status and settlement updates
// @Summary Update insurance claim
// @Tags Insurance
// @Accept json
// @Produce json
// @Param id path int true "Claim ID"
// @Param body body services.UpdateClaimInput true "Claim update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /insurance/claims/{id} [patch]
func (h *InsuranceHandler) UpdateClaim(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid claim ID")
	}

	var input services.UpdateClaimInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	claim, err := h.insuranceService.UpdateClaim(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Claim not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid claim status")
		default:
			return response.InternalServerError(c, "Failed to update claim")
		}
	}

	return response.Success(c, "Claim updated", fiber.Map{"claim": claim})
}
