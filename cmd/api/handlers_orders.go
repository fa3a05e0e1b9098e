package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/application"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/domain"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/api"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/logging"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/middleware"
)

func registerOrderRoutes(group *gin.RouterGroup, service *application.OrderService, logger *logging.Logger) {
	orders := group.Group("/orders")
	{
		orders.POST("", middleware.RequireRoles(middleware.RoleManager, middleware.RoleSales), createOrderHandler(service, logger))
		orders.GET("", listOrdersHandler(service, logger))
		orders.GET("/board", boardReportHandler(service, logger))
		orders.GET("/:id", getOrderHandler(service, logger))
		orders.PUT("/:id", middleware.RequireRoles(middleware.RoleManager, middleware.RoleSales), updateOrderHandler(service, logger))
		orders.PUT("/:id/stage", middleware.RequireRoles(middleware.RoleManager, middleware.RoleProductionManager, middleware.RoleProductionStaff), moveStageHandler(service, logger))
		orders.DELETE("/:id", middleware.RequireRoles(middleware.RoleManager, middleware.RoleProductionManager), deleteOrderHandler(service, logger))
	}

	archived := group.Group("/archived-orders")
	{
		archived.GET("", listArchivedOrdersHandler(service, logger))
		archived.GET("/:orderNumber", getArchivedOrderHandler(service, logger))
	}
}

type orderItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unitPrice"`
}

func toItemInputs(items []orderItemRequest) []application.OrderItemInput {
	inputs := make([]application.OrderItemInput, len(items))
	for i, item := range items {
		inputs[i] = application.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return inputs
}

func createOrderHandler(service *application.OrderService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			OrderNumber string             `json:"orderNumber" binding:"omitempty,order_number"`
			ClientID    string             `json:"clientId" binding:"required"`
			Items       []orderItemRequest `json:"items" binding:"required,min=1,dive"`
			DueDate     time.Time          `json:"dueDate"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		order, err := service.CreateOrder(c.Request.Context(), application.CreateOrderCommand{
			OrderNumber: req.OrderNumber,
			ClientID:    req.ClientID,
			Items:       toItemInputs(req.Items),
			DueDate:     req.DueDate,
			CreatedBy:   middleware.UserID(c),
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusCreated, order)
	}
}

func getOrderHandler(service *application.OrderService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		order, err := service.GetOrder(c.Request.Context(), c.Param("id"))
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

func listOrdersHandler(service *application.OrderService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		page := api.ParsePagination(c)
		orders, err := service.ListOrders(c.Request.Context(), application.ListOrdersQuery{
			Stage:    domain.Stage(c.Query("stage")),
			Status:   domain.OrderStatus(c.Query("status")),
			ClientID: c.Query("clientId"),
			Page:     page.Page,
			PageSize: page.PageSize,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

func updateOrderHandler(service *application.OrderService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			Items   []orderItemRequest `json:"items" binding:"required,min=1,dive"`
			DueDate time.Time          `json:"dueDate"`
			Notes   string             `json:"notes"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		order, err := service.UpdateOrder(c.Request.Context(), application.UpdateOrderCommand{
			OrderID: c.Param("id"),
			Items:   toItemInputs(req.Items),
			DueDate: req.DueDate,
			Notes:   req.Notes,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// moveStageHandler accepts either a direction ("forward"/"back") or an
// explicit target stage. Exactly one of the two must be set.
func moveStageHandler(service *application.OrderService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			Direction string `json:"direction"`
			Target    string `json:"target"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}
		if (req.Direction == "") == (req.Target == "") {
			responder.RespondBadRequest("provide exactly one of direction or target")
			return
		}

		var (
			order *application.OrderDTO
			err   error
		)
		if req.Target != "" {
			order, err = service.JumpStage(c.Request.Context(), application.JumpStageCommand{
				OrderID:   c.Param("id"),
				Target:    domain.Stage(req.Target),
				ChangedBy: middleware.UserID(c),
			})
		} else {
			order, err = service.MoveStage(c.Request.Context(), application.MoveStageCommand{
				OrderID:   c.Param("id"),
				Direction: req.Direction,
				ChangedBy: middleware.UserID(c),
			})
		}
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

func deleteOrderHandler(service *application.OrderService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		result, err := service.DeleteOrder(c.Request.Context(), application.DeleteOrderCommand{
			OrderID:   c.Param("id"),
			DeletedBy: middleware.UserID(c),
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func boardReportHandler(service *application.OrderService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		includeOrders := c.Query("includeOrders") == "true"
		report, err := service.BoardReport(c.Request.Context(), includeOrders)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, report)
	}
}

func listArchivedOrdersHandler(service *application.OrderService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		page := api.ParsePagination(c)
		orders, err := service.ListArchivedOrders(c.Request.Context(), c.Query("clientId"), page)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

func getArchivedOrderHandler(service *application.OrderService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		order, err := service.GetArchivedOrder(c.Request.Context(), c.Param("orderNumber"))
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, order)
	}
}
