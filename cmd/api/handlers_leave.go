package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/application"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/domain"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/api"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/logging"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/middleware"
)

func registerLeaveRoutes(group *gin.RouterGroup, service *application.LeaveService, logger *logging.Logger) {
	leave := group.Group("/leave")
	{
		leave.POST("", createLeaveRequestHandler(service, logger))
		leave.GET("", listLeaveRequestsHandler(service, logger))
		leave.POST("/adjustments", middleware.RequireRoles(middleware.RoleManager), adjustLeaveBalanceHandler(service, logger))
		leave.GET("/balances/:employeeId", leaveBalanceSummaryHandler(service, logger))
		leave.GET("/:id", getLeaveRequestHandler(service, logger))
		leave.POST("/:id/approve", middleware.RequireRoles(middleware.RoleManager), approveLeaveHandler(service, logger))
		leave.POST("/:id/reject", middleware.RequireRoles(middleware.RoleManager), rejectLeaveHandler(service, logger))
		leave.POST("/:id/cancel", cancelLeaveHandler(service, logger))
	}
}

func createLeaveRequestHandler(service *application.LeaveService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			EmployeeID string    `json:"employeeId" binding:"required"`
			Type       string    `json:"type" binding:"required,leave_type"`
			Hours      float64   `json:"hours" binding:"required,gt=0"`
			StartDate  time.Time `json:"startDate" binding:"required"`
			EndDate    time.Time `json:"endDate" binding:"required"`
			Reason     string    `json:"reason"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		request, err := service.CreateRequest(c.Request.Context(), application.CreateLeaveRequestCommand{
			EmployeeID: req.EmployeeID,
			Type:       domain.LeaveType(req.Type),
			Hours:      req.Hours,
			StartDate:  req.StartDate,
			EndDate:    req.EndDate,
			Reason:     req.Reason,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusCreated, request)
	}
}

func getLeaveRequestHandler(service *application.LeaveService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		request, err := service.GetRequest(c.Request.Context(), c.Param("id"))
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, request)
	}
}

func listLeaveRequestsHandler(service *application.LeaveService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		page := api.ParsePagination(c)
		requests, err := service.ListRequests(c.Request.Context(), c.Query("employeeId"), domain.LeaveStatus(c.Query("status")), page)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, requests)
	}
}

func approveLeaveHandler(service *application.LeaveService, logger *logging.Logger) gin.HandlerFunc {
	return decideLeaveHandler(service.ApproveRequest, logger)
}

func rejectLeaveHandler(service *application.LeaveService, logger *logging.Logger) gin.HandlerFunc {
	return decideLeaveHandler(service.RejectRequest, logger)
}

func cancelLeaveHandler(service *application.LeaveService, logger *logging.Logger) gin.HandlerFunc {
	return decideLeaveHandler(service.CancelRequest, logger)
}

func decideLeaveHandler(decide func(ctx context.Context, cmd application.DecideLeaveCommand) (*application.LeaveRequestDTO, error), logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			Note string `json:"note"`
		}
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				responder.RespondBadRequest(err.Error())
				return
			}
		}

		request, err := decide(c.Request.Context(), application.DecideLeaveCommand{
			RequestID: c.Param("id"),
			DecidedBy: middleware.UserID(c),
			Note:      req.Note,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, request)
	}
}

func adjustLeaveBalanceHandler(service *application.LeaveService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			EmployeeID string  `json:"employeeId" binding:"required"`
			Type       string  `json:"type" binding:"required,leave_type"`
			Hours      float64 `json:"hours" binding:"required"`
			Reason     string  `json:"reason" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		employee, err := service.AdjustBalance(c.Request.Context(), application.AdjustLeaveCommand{
			EmployeeID: req.EmployeeID,
			Type:       domain.LeaveType(req.Type),
			Hours:      req.Hours,
			Reason:     req.Reason,
			AdjustedBy: middleware.UserID(c),
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, employee)
	}
}

func leaveBalanceSummaryHandler(service *application.LeaveService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		summary, err := service.BalanceSummary(c.Request.Context(), c.Param("employeeId"))
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, summary)
	}
}
