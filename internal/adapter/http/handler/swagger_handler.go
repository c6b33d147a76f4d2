package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Swagger API documentation metadata.
// Метаданные документации Swagger API.
// @title Users Service API
// @version 1.0
// @description Accounts, authentication, SSO and follow graph of TwitSnap users.

// @contact.name API Support
// @contact.url https://github.com/Twit-Snap/users-service

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.

// RegisterSwagger registers Swagger documentation routes.
// RegisterSwagger регистрирует маршруты документации Swagger.
//
// Swagger UI is available at /swagger/index.html.
// Swagger UI доступен по адресу /swagger/index.html.
func RegisterSwagger(router gin.IRoutes) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("/swagger/doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))
}
