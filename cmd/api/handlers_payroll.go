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

const dateLayout = "2006-01-02"

func registerPayrollRoutes(group *gin.RouterGroup, service *application.PayrollService, logger *logging.Logger) {
	employees := group.Group("/employees")
	{
		employees.POST("", middleware.RequireRoles(middleware.RoleManager), createEmployeeHandler(service, logger))
		employees.GET("", middleware.RequireRoles(middleware.RoleManager), listEmployeesHandler(service, logger))
		employees.GET("/:id", getEmployeeHandler(service, logger))
	}

	timesheets := group.Group("/timesheets")
	{
		timesheets.POST("", createTimesheetHandler(service, logger))
		timesheets.GET("", listTimesheetsHandler(service, logger))
		timesheets.GET("/report", middleware.RequireRoles(middleware.RoleManager), timesheetReportHandler(service, logger))
		timesheets.GET("/:id", getTimesheetHandler(service, logger))
		timesheets.PUT("/:id", updateTimesheetHandler(service, logger))
		timesheets.DELETE("/:id", deleteTimesheetHandler(service, logger))
		timesheets.POST("/:id/submit", submitTimesheetHandler(service, logger))
		timesheets.POST("/:id/approve", middleware.RequireRoles(middleware.RoleManager), approveTimesheetHandler(service, logger))
		timesheets.POST("/:id/reject", middleware.RequireRoles(middleware.RoleManager), rejectTimesheetHandler(service, logger))
		timesheets.GET("/:id/payslip", getPayslipHandler(service, logger))
	}
}

func createEmployeeHandler(service *application.PayrollService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			Name               string  `json:"name" binding:"required"`
			Role               string  `json:"role"`
			Email              string  `json:"email"`
			HourlyRate         float64 `json:"hourlyRate" binding:"required,gt=0"`
			OvertimeMultiplier float64 `json:"overtimeMultiplier"`
			AnnualPerWeek      float64 `json:"annualPerWeek"`
			SickPerWeek        float64 `json:"sickPerWeek"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		employee, err := service.CreateEmployee(c.Request.Context(), application.CreateEmployeeCommand{
			Name:               req.Name,
			Role:               req.Role,
			Email:              req.Email,
			HourlyRate:         req.HourlyRate,
			OvertimeMultiplier: req.OvertimeMultiplier,
			AnnualPerWeek:      req.AnnualPerWeek,
			SickPerWeek:        req.SickPerWeek,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusCreated, employee)
	}
}

func getEmployeeHandler(service *application.PayrollService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		employee, err := service.GetEmployee(c.Request.Context(), c.Param("id"))
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, employee)
	}
}

func listEmployeesHandler(service *application.PayrollService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		page := api.ParsePagination(c)
		activeOnly := c.Query("activeOnly") == "true"
		employees, err := service.ListEmployees(c.Request.Context(), activeOnly, page)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, employees)
	}
}

type timesheetEntryRequest struct {
	Day           string  `json:"day" binding:"required"`
	OrdinaryHours float64 `json:"ordinaryHours"`
	OvertimeHours float64 `json:"overtimeHours"`
	Notes         string  `json:"notes"`
}

func toEntryInputs(entries []timesheetEntryRequest) []application.TimesheetEntryInput {
	inputs := make([]application.TimesheetEntryInput, len(entries))
	for i, entry := range entries {
		inputs[i] = application.TimesheetEntryInput{
			Day:           entry.Day,
			OrdinaryHours: entry.OrdinaryHours,
			OvertimeHours: entry.OvertimeHours,
			Notes:         entry.Notes,
		}
	}
	return inputs
}

func createTimesheetHandler(service *application.PayrollService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			EmployeeID   string                  `json:"employeeId" binding:"required"`
			WeekStarting time.Time               `json:"weekStarting" binding:"required"`
			Entries      []timesheetEntryRequest `json:"entries" binding:"required,min=1,dive"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		timesheet, err := service.CreateTimesheet(c.Request.Context(), application.CreateTimesheetCommand{
			EmployeeID:   req.EmployeeID,
			WeekStarting: req.WeekStarting,
			Entries:      toEntryInputs(req.Entries),
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusCreated, timesheet)
	}
}

func getTimesheetHandler(service *application.PayrollService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		timesheet, err := service.GetTimesheet(c.Request.Context(), c.Param("id"))
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, timesheet)
	}
}

func listTimesheetsHandler(service *application.PayrollService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		page := api.ParsePagination(c)
		timesheets, err := service.ListTimesheets(c.Request.Context(), c.Query("employeeId"), domain.TimesheetStatus(c.Query("status")), page)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, timesheets)
	}
}

func updateTimesheetHandler(service *application.PayrollService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			Entries []timesheetEntryRequest `json:"entries" binding:"required,min=1,dive"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		timesheet, err := service.UpdateTimesheet(c.Request.Context(), application.UpdateTimesheetCommand{
			TimesheetID: c.Param("id"),
			Entries:     toEntryInputs(req.Entries),
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, timesheet)
	}
}

func deleteTimesheetHandler(service *application.PayrollService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		if err := service.DeleteTimesheet(c.Request.Context(), c.Param("id")); err != nil {
			responder.RespondWithError(err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func submitTimesheetHandler(service *application.PayrollService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		timesheet, err := service.SubmitTimesheet(c.Request.Context(), c.Param("id"))
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, timesheet)
	}
}

func approveTimesheetHandler(service *application.PayrollService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		record, err := service.ApproveTimesheet(c.Request.Context(), application.ApproveTimesheetCommand{
			TimesheetID: c.Param("id"),
			ApprovedBy:  middleware.UserID(c),
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, record)
	}
}

func rejectTimesheetHandler(service *application.PayrollService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			Reason string `json:"reason" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		timesheet, err := service.RejectTimesheet(c.Request.Context(), application.RejectTimesheetCommand{
			TimesheetID: c.Param("id"),
			RejectedBy:  middleware.UserID(c),
			Reason:      req.Reason,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, timesheet)
	}
}

func getPayslipHandler(service *application.PayrollService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		record, err := service.GetPayslip(c.Request.Context(), c.Param("id"))
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, record)
	}
}

func timesheetReportHandler(service *application.PayrollService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		from, err := time.Parse(dateLayout, c.Query("from"))
		if err != nil {
			responder.RespondBadRequest("from must be a date in YYYY-MM-DD format")
			return
		}
		to, err := time.Parse(dateLayout, c.Query("to"))
		if err != nil {
			responder.RespondBadRequest("to must be a date in YYYY-MM-DD format")
			return
		}

		report, err := service.TimesheetReport(c.Request.Context(), application.TimesheetReportQuery{From: from, To: to})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, report)
	}
}
