package handlers

import (
	"errors"
	"log"

	"washlab-backend/internal/core/domain"
	"washlab-backend/internal/core/services"
	"washlab-backend/internal/pkg/pagination"
	"washlab-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MpesaHandler handles M-Pesa payment endpoints
type MpesaHandler struct {
	mpesaService *services.MpesaService
}

// NewMpesaHandler creates a new M-Pesa handler
func NewMpesaHandler(mpesaService *services.MpesaService) *MpesaHandler {
	return &MpesaHandler{mpesaService: mpesaService}
}

// stkCallbackEnvelope mirrors the nested body Daraja posts to the callback URL.
type stkCallbackEnvelope struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []struct {
					Name  string      `json:"Name"`
					Value interface{} `json:"Value"`
				} `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

// STKPush handles payment initiation
// @Summary Initiate STK push payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param body body services.STKPushInput true "Payment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /payments/stkpush [post]
func (h *MpesaHandler) STKPush(c *fiber.Ctx) error {
	var input services.STKPushInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	payment, err := h.mpesaService.STKPush(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "A valid Kenyan phone number and a positive amount are required")
		}
		return response.InternalServerError(c, "Failed to initiate payment")
	}

	return response.Created(c, "Payment initiated, check your phone", fiber.Map{"payment": payment})
}

// Callback handles the Daraja result callback. Always returns 200 so Safaricom
// does not retry on our own processing errors.
// @Summary M-Pesa payment callback
// @Tags Payments
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /payments/callback [post]
func (h *MpesaHandler) Callback(c *fiber.Ctx) error {
	var envelope stkCallbackEnvelope
	if err := c.BodyParser(&envelope); err != nil {
		log.Printf("⚠️ Unreadable M-Pesa callback: %v", err)
		return response.Success(c, "Callback received", nil)
	}

	cb := envelope.Body.StkCallback
	input := &services.CallbackInput{
		CheckoutRequestID: cb.CheckoutRequestID,
		ResultCode:        cb.ResultCode,
		ResultDesc:        cb.ResultDesc,
	}
	for _, item := range cb.CallbackMetadata.Item {
		if item.Name == "MpesaReceiptNumber" {
			if receipt, ok := item.Value.(string); ok {
				input.ReceiptNumber = receipt
			}
		}
	}

	if _, err := h.mpesaService.HandleCallback(c.Context(), input); err != nil {
		log.Printf("⚠️ M-Pesa callback for %s not applied: %v", cb.CheckoutRequestID, err)
	}

	return response.Success(c, "Callback received", nil)
}

// GetPayment handles payment status lookup by checkout request ID
// @Summary Get payment status
// @Tags Payments
// @Produce json
// @Param id path string true "Checkout request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /payments/{id} [get]
func (h *MpesaHandler) GetPayment(c *fiber.Ctx) error {
	payment, err := h.mpesaService.GetPayment(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			return response.NotFound(c, "Payment not found")
		}
		return response.InternalServerError(c, "Failed to get payment")
	}

	return response.Success(c, "Payment retrieved", fiber.Map{"payment": payment})
}

// ListPayments handles payment listing
// @Summary List payments
// @Tags Payments
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /payments [get]
func (h *MpesaHandler) ListPayments(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	payments, total, err := h.mpesaService.ListPayments(c.Context(), c.Query("status"), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list payments")
	}

	return response.Success(c, "Payments retrieved", fiber.Map{
		"payments": payments,
		"meta":     pagination.GetMeta(params, total),
	})
}
