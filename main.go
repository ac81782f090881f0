package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/ubuntu-fest/leaderboard-api/cmd/app"
)

// @title          Fest Leaderboard API
// @version        1.0
// @description    Points ledger and live leaderboard for the inter-college fest.
//
// @BasePath  /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
