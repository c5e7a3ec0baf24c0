// Package main Casino API
//
// Casino runs a shared, timed roulette table and single-player blackjack hands
// against one wallet per user.
//
//  1. Roulette rounds open and settle lazily as players and viewers poll the table.
//
//  2. Blackjack hands are dealt, played and settled atomically against the wallet.
//
//     Schemes: http, https
//     Host: localhost:8080
//     BasePath: /api/v1
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - bearer
package main

import (
	"context"

	_ "github.com/saradorri/casino/docs"
	"github.com/saradorri/casino/internal/app"
)

// @title Casino API Service
// @version 1.0
// @description Roulette rounds, blackjack hands and wallets for the casino platform.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	ctx := context.Background()
	application := app.NewApplication(ctx)
	application.Setup()
}
