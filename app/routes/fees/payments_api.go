package fees

import (
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/javedansari81/sunrise-school-management-sub001/app/database"
	"github.com/javedansari81/sunrise-school-management-sub001/app/models"
	"github.com/javedansari81/sunrise-school-management-sub001/app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreatePaymentRequest struct {
	FeeRecordID   string                       `json:"fee_record_id" validate:"required,uuid"`
	Amount        float64                      `json:"amount" validate:"required,gt=0"`
	PaymentMethod models.PaymentMethod         `json:"payment_method" validate:"required,oneof=cash cheque online upi"`
	PaymentDate   string                       `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	Notes         *string                      `json:"notes,omitempty"`
	Allocations   []services.AllocationRequest `json:"allocations,omitempty" validate:"omitempty,dive"`
}

func newReceiptNo() string {
	return "RCP-" + strings.ToUpper(uuid.New().String()[:8])
}

// CreatePaymentAPI records a payment and allocates it across the monthly
// ledger in one transaction. When the caller gives no allocation list the
// amount is spread over unpaid months oldest first.
func CreatePaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	paymentDate := time.Now()
	if req.PaymentDate != "" {
		parsed, err := time.Parse("2006-01-02", req.PaymentDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid payment_date, expected YYYY-MM-DD")
		}
		paymentDate = parsed
	}

	record, err := database.GetFeeRecordByID(db, req.FeeRecordID)
	if err != nil {
		if err == database.ErrFeeRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee record")
	}

	requests := req.Allocations
	if len(requests) == 0 && record.IsMonthlyTracked {
		unpaid, err := database.GetUnpaidLedgerEntries(db, req.FeeRecordID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch monthly ledger")
		}
		var leftover float64
		requests, leftover = services.SplitOldestFirst(unpaid, req.Amount)
		if leftover > 0 {
			log.Printf("Payment for fee record %s exceeds outstanding ledger by %.2f", req.FeeRecordID, leftover)
		}
	}

	var receivedBy *string
	if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
		receivedBy = &userID
	}

	payment := &models.Payment{
		FeeRecordID:   req.FeeRecordID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		PaymentDate:   paymentDate,
		ReceiptNo:     newReceiptNo(),
		ReceivedBy:    receivedBy,
		Notes:         req.Notes,
	}

	allocations, err := database.CreatePaymentWithAllocations(db, payment, requests)
	if err != nil {
		if err == database.ErrOverAllocated {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		log.Printf("Failed to record payment for fee record %s: %v", req.FeeRecordID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to record payment")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Payment recorded successfully",
		"data": fiber.Map{
			"payment":     payment,
			"allocations": allocations,
		},
	})
}

type AllocatePaymentRequest struct {
	PaymentID   string                       `json:"payment_id" validate:"required,uuid"`
	Allocations []services.AllocationRequest `json:"allocations" validate:"required,min=1,dive"`
}

// AllocatePaymentAPI applies an existing payment to ledger entries. Pairs
// already allocated are skipped rather than rejected.
func AllocatePaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req AllocatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	allocations, err := database.AllocatePayment(db, req.PaymentID, req.Allocations)
	if err != nil {
		if err == database.ErrOverAllocated {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		log.Printf("Failed to allocate payment %s: %v", req.PaymentID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to allocate payment")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    allocations,
	})
}

// GetPaymentsAPI returns all payments recorded against a fee record.
func GetPaymentsAPI(c *fiber.Ctx, db *sql.DB) error {
	feeRecordID := c.Params("fee_record_id")

	payments, err := database.GetPaymentsForFeeRecord(db, feeRecordID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payments")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    payments,
	})
}

// GetPaymentAllocationsAPI returns the ledger allocations of one payment.
func GetPaymentAllocationsAPI(c *fiber.Ctx, db *sql.DB) error {
	paymentID := c.Params("payment_id")

	allocations, err := database.GetAllocationsForPayment(db, paymentID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch allocations")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    allocations,
	})
}
