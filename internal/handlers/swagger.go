package handlers

// @title Causes API
// @version 1.0
// @description Read access to boycott causes

// @host localhost:8081
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name causes
// @tag.description Cause listing
