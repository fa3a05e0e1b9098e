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

func registerStockRoutes(group *gin.RouterGroup, service *application.StockService, logger *logging.Logger) {
	stock := group.Group("/stock")
	{
		stock.POST("", middleware.RequireRoles(middleware.RoleManager, middleware.RoleProductionManager), createStockEntryHandler(service, logger))
		stock.GET("", listStockHandler(service, logger))
		stock.GET("/report", middleware.RequireRoles(middleware.RoleManager, middleware.RoleProductionManager), stockReportHandler(service, logger))
		stock.GET("/history", stockHistoryHandler(service, logger))
		stock.GET("/history/export", exportStockHistoryHandler(service, logger))
		stock.GET("/allocations", allocationsByOrderHandler(service, logger))
		stock.POST("/allocate", middleware.RequireRoles(middleware.RoleManager, middleware.RoleProductionManager, middleware.RoleProductionStaff), allocateStockHandler(service, logger))
		stock.GET("/:id", getStockEntryHandler(service, logger))
		stock.POST("/:id/add", middleware.RequireRoles(middleware.RoleManager, middleware.RoleProductionManager, middleware.RoleProductionStaff), addStockHandler(service, logger))
		stock.POST("/:id/consume", middleware.RequireRoles(middleware.RoleManager, middleware.RoleProductionManager, middleware.RoleProductionStaff), consumeStockHandler(service, logger))
		stock.POST("/:id/archive", middleware.RequireRoles(middleware.RoleManager, middleware.RoleProductionManager), archiveStockEntryHandler(service, logger))
	}
}

func createStockEntryHandler(service *application.StockService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			ClientID          string  `json:"clientId" binding:"required"`
			ProductID         string  `json:"productId" binding:"required"`
			OpeningQuantity   float64 `json:"openingQuantity"`
			MinimumStockLevel float64 `json:"minimumStockLevel"`
			Location          string  `json:"location"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		entry, err := service.CreateEntry(c.Request.Context(), application.CreateStockEntryCommand{
			ClientID:          req.ClientID,
			ProductID:         req.ProductID,
			OpeningQuantity:   req.OpeningQuantity,
			MinimumStockLevel: req.MinimumStockLevel,
			Location:          req.Location,
			CreatedBy:         middleware.UserID(c),
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusCreated, entry)
	}
}

func getStockEntryHandler(service *application.StockService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		entry, err := service.GetEntry(c.Request.Context(), c.Param("id"))
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, entry)
	}
}

func listStockHandler(service *application.StockService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		page := api.ParsePagination(c)
		lowOnly := c.Query("low") == "true"
		entries, err := service.ListEntries(c.Request.Context(), c.Query("clientId"), lowOnly, page)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, entries)
	}
}

func addStockHandler(service *application.StockService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			Quantity float64 `json:"quantity" binding:"required"`
			Note     string  `json:"note"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		entry, err := service.AddStock(c.Request.Context(), application.AddStockCommand{
			StockID:   c.Param("id"),
			Quantity:  req.Quantity,
			Note:      req.Note,
			CreatedBy: middleware.UserID(c),
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, entry)
	}
}

func consumeStockHandler(service *application.StockService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			Quantity float64 `json:"quantity" binding:"required"`
			Note     string  `json:"note"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		entry, err := service.ConsumeStock(c.Request.Context(), application.ConsumeStockCommand{
			StockID:   c.Param("id"),
			Quantity:  req.Quantity,
			Note:      req.Note,
			CreatedBy: middleware.UserID(c),
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, entry)
	}
}

func allocateStockHandler(service *application.StockService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			StockID  string  `json:"stockId" binding:"required"`
			OrderID  string  `json:"orderId" binding:"required"`
			Quantity float64 `json:"quantity" binding:"required,gt=0"`
			Note     string  `json:"note"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		movement, err := service.Allocate(c.Request.Context(), application.AllocateStockCommand{
			StockID:     req.StockID,
			OrderID:     req.OrderID,
			Quantity:    req.Quantity,
			Note:        req.Note,
			AllocatedBy: middleware.UserID(c),
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusCreated, movement)
	}
}

func allocationsByOrderHandler(service *application.StockService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		orderID := c.Query("orderId")
		if orderID == "" {
			responder.RespondBadRequest("orderId is required")
			return
		}

		allocations, err := service.AllocationsByOrder(c.Request.Context(), orderID)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, allocations)
	}
}

func stockReportHandler(service *application.StockService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		page := api.ParsePagination(c)
		report, err := service.Report(c.Request.Context(), c.Query("clientId"), page)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, report)
	}
}

func stockHistoryHandler(service *application.StockService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		page := api.ParsePagination(c)
		history, err := service.History(c.Request.Context(), application.StockHistoryQuery{
			StockID:  c.Query("stockId"),
			OrderID:  c.Query("orderId"),
			Type:     domain.MovementType(c.Query("type")),
			Page:     page.Page,
			PageSize: page.PageSize,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, history)
	}
}

func exportStockHistoryHandler(service *application.StockService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		query := application.StockHistoryQuery{
			StockID: c.Query("stockId"),
			OrderID: c.Query("orderId"),
			Type:    domain.MovementType(c.Query("type")),
		}

		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="stock-history.csv"`)
		if err := service.ExportHistoryCSV(c.Request.Context(), query, c.Writer); err != nil {
			responder.RespondWithError(err)
			return
		}
	}
}

func archiveStockEntryHandler(service *application.StockService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		if err := service.ArchiveEntry(c.Request.Context(), c.Param("id")); err != nil {
			responder.RespondWithError(err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
