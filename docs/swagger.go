// Package docs provides Swagger documentation for the API.
package docs

// @title Separata Backend API
// @version 1.0
// @description API for scheduling promotional pricing campaigns (separatas) and exporting price lists

// @contact.name Soporte Sistemas
// @contact.email sistemas@sisventas.example

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
