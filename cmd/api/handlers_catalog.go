package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/application"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/api"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/logging"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/middleware"
)

func registerCatalogRoutes(group *gin.RouterGroup, service *application.CatalogService, logger *logging.Logger) {
	clients := group.Group("/clients")
	{
		clients.POST("", middleware.RequireRoles(middleware.RoleSales, middleware.RoleManager), createClientHandler(service, logger))
		clients.GET("", listClientsHandler(service, logger))
		clients.GET("/:id", getClientHandler(service, logger))
		clients.PUT("/:id", middleware.RequireRoles(middleware.RoleSales, middleware.RoleManager), updateClientHandler(service, logger))
		clients.DELETE("/:id", middleware.RequireRoles(middleware.RoleAdmin), deleteClientHandler(service, logger))
	}

	products := group.Group("/products")
	{
		products.POST("", middleware.RequireRoles(middleware.RoleSales, middleware.RoleManager), createProductHandler(service, logger))
		products.GET("", listProductsHandler(service, logger))
		products.GET("/:id", getProductHandler(service, logger))
		products.PUT("/:id", middleware.RequireRoles(middleware.RoleSales, middleware.RoleManager), updateProductHandler(service, logger))
		products.DELETE("/:id", middleware.RequireRoles(middleware.RoleAdmin), deleteProductHandler(service, logger))
	}
}

func createClientHandler(service *application.CatalogService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			Name           string `json:"name" binding:"required"`
			ContactName    string `json:"contactName"`
			ContactEmail   string `json:"contactEmail"`
			ContactPhone   string `json:"contactPhone"`
			BillingAddress string `json:"billingAddress"`
			ABN            string `json:"abn"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		client, err := service.CreateClient(c.Request.Context(), application.CreateClientCommand{
			Name:           req.Name,
			ContactName:    req.ContactName,
			ContactEmail:   req.ContactEmail,
			ContactPhone:   req.ContactPhone,
			BillingAddress: req.BillingAddress,
			ABN:            req.ABN,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusCreated, client)
	}
}

func getClientHandler(service *application.CatalogService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		client, err := service.GetClient(c.Request.Context(), c.Param("id"))
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, client)
	}
}

func listClientsHandler(service *application.CatalogService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		page := api.ParsePagination(c)
		clients, err := service.ListClients(c.Request.Context(), page)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, clients)
	}
}

func updateClientHandler(service *application.CatalogService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			Name           string `json:"name" binding:"required"`
			ContactName    string `json:"contactName"`
			ContactEmail   string `json:"contactEmail"`
			ContactPhone   string `json:"contactPhone"`
			BillingAddress string `json:"billingAddress"`
			ABN            string `json:"abn"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		client, err := service.UpdateClient(c.Request.Context(), application.UpdateClientCommand{
			ClientID:       c.Param("id"),
			Name:           req.Name,
			ContactName:    req.ContactName,
			ContactEmail:   req.ContactEmail,
			ContactPhone:   req.ContactPhone,
			BillingAddress: req.BillingAddress,
			ABN:            req.ABN,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, client)
	}
}

func deleteClientHandler(service *application.CatalogService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		if err := service.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
			responder.RespondWithError(err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func createProductHandler(service *application.CatalogService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			Code        string  `json:"code" binding:"required,product_code"`
			Description string  `json:"description" binding:"required"`
			ClientID    string  `json:"clientId" binding:"required"`
			CoreSize    float64 `json:"coreSize"`
			Width       float64 `json:"width"`
			Diameter    float64 `json:"diameter"`
			Unit        string  `json:"unit" binding:"required"`
			UnitPrice   float64 `json:"unitPrice" binding:"required,gt=0"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		product, err := service.CreateProduct(c.Request.Context(), application.CreateProductCommand{
			Code:        req.Code,
			Description: req.Description,
			ClientID:    req.ClientID,
			CoreSize:    req.CoreSize,
			Width:       req.Width,
			Diameter:    req.Diameter,
			Unit:        req.Unit,
			UnitPrice:   req.UnitPrice,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}

func getProductHandler(service *application.CatalogService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		product, err := service.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

func listProductsHandler(service *application.CatalogService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		page := api.ParsePagination(c)
		products, err := service.ListProducts(c.Request.Context(), c.Query("clientId"), page)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

func updateProductHandler(service *application.CatalogService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			Description string  `json:"description" binding:"required"`
			CoreSize    float64 `json:"coreSize"`
			Width       float64 `json:"width"`
			Diameter    float64 `json:"diameter"`
			Unit        string  `json:"unit" binding:"required"`
			UnitPrice   float64 `json:"unitPrice" binding:"required,gt=0"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		product, err := service.UpdateProduct(c.Request.Context(), application.UpdateProductCommand{
			ProductID:   c.Param("id"),
			Description: req.Description,
			CoreSize:    req.CoreSize,
			Width:       req.Width,
			Diameter:    req.Diameter,
			Unit:        req.Unit,
			UnitPrice:   req.UnitPrice,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

func deleteProductHandler(service *application.CatalogService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		if err := service.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
			responder.RespondWithError(err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
