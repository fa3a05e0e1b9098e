package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/application"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/domain"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/api"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/logging"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/middleware"
)

func registerInvoiceRoutes(group *gin.RouterGroup, service *application.InvoiceService, logger *logging.Logger) {
	invoices := group.Group("/invoices")
	{
		invoices.POST("", middleware.RequireRoles(middleware.RoleManager, middleware.RoleSales), createInvoiceHandler(service, logger))
		invoices.GET("", listInvoicesHandler(service, logger))
		invoices.GET("/:id", getInvoiceHandler(service, logger))
		invoices.POST("/:id/sync", middleware.RequireRoles(middleware.RoleManager), syncInvoiceHandler(service, logger))
	}
}

func createInvoiceHandler(service *application.InvoiceService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			OrderID string `json:"orderId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		invoice, err := service.CreateInvoice(c.Request.Context(), application.CreateInvoiceCommand{
			OrderID:   req.OrderID,
			CreatedBy: middleware.UserID(c),
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusCreated, invoice)
	}
}

func getInvoiceHandler(service *application.InvoiceService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		invoice, err := service.GetInvoice(c.Request.Context(), c.Param("id"))
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, invoice)
	}
}

func listInvoicesHandler(service *application.InvoiceService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		page := api.ParsePagination(c)
		invoices, err := service.ListInvoices(c.Request.Context(), domain.SyncStatus(c.Query("syncStatus")), page)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, invoices)
	}
}

func syncInvoiceHandler(service *application.InvoiceService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		invoice, err := service.SyncInvoice(c.Request.Context(), application.SyncInvoiceCommand{
			InvoiceID: c.Param("id"),
			SyncedBy:  middleware.UserID(c),
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, invoice)
	}
}
