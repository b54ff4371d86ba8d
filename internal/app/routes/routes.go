package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/schoolbill/backend/internal/app/controllers"
	"github.com/schoolbill/backend/internal/app/models/dto"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	feeTypeController *controllers.FeeTypeController,
	feeStructureController *controllers.FeeStructureController,
	voucherController *controllers.VoucherController,
	generationController *controllers.GenerationController,
	statementController *controllers.StatementController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Fee type catalog routes
	feeTypes := v1.Group("/fee-types")
	{
		feeTypes.POST("", feeTypeController.CreateFeeType)
		feeTypes.GET("", feeTypeController.GetAllFeeTypes)
		feeTypes.GET("/:id", feeTypeController.GetFeeTypeByID)
		feeTypes.PUT("/:id", feeTypeController.UpdateFeeType)
		feeTypes.DELETE("/:id", feeTypeController.DeleteFeeType)
	}

	// Fee structure configuration routes
	feeStructures := v1.Group("/fee-structures")
	{
		feeStructures.POST("", feeStructureController.CreateFeeStructure)
		feeStructures.GET("", feeStructureController.GetAllFeeStructures)
		feeStructures.GET("/:id", feeStructureController.GetFeeStructureByID)
		feeStructures.PUT("/:id", feeStructureController.UpdateFeeStructure)
		feeStructures.DELETE("/:id", feeStructureController.DeleteFeeStructure)
	}

	// Billing routes
	fee := v1.Group("/fee")
	{
		vouchers := fee.Group("/vouchers")
		{
			vouchers.POST("", voucherController.CreateVoucher)
			// Registered before ":id" routes so the literal path wins
			vouchers.POST("/generate-monthly", generationController.GenerateMonthly)
			vouchers.GET("/:id", voucherController.GetVoucherByID)
			vouchers.DELETE("/:id", voucherController.DeleteVoucher)
			vouchers.PATCH("/:id/payment", voucherController.ApplyPayment)
		}

		fee.GET("/students/:studentId/vouchers", voucherController.ListStudentVouchers)

		lineItems := fee.Group("/line-items")
		{
			lineItems.POST("", voucherController.AddLineItem)
			lineItems.PUT("/:id", voucherController.UpdateLineItem)
			lineItems.DELETE("/:id", voucherController.DeleteLineItem)
		}

		statements := fee.Group("/statements")
		{
			statements.GET("", statementController.ListStatements)
			statements.GET("/:voucherId", statementController.GetStatement)
		}
	}

	// Health check endpoint
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
