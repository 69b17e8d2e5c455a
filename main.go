package main

import (
	"context"
	"time"

	"github.com/inkpress/inkpress/internal/app"
)

// @title           Inkpress API
// @version         1.0
// @description     Inkpress provides publishing, identity and notification APIs for the Inkpress blogging platform.
// @termsOfService  https://inkpress.dev/terms
// @contact.name    Contact Support
// @contact.url     https://inkpress.dev/contact
// @contact.email   support@inkpress.dev
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
// @server          https://localhost:8080
// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT.
func main() {
	application := app.New()    // Initialize the application
	wait := application.Start() // Start the application and wait for the termination signal
	<-wait                      // Wait for the application to receive a termination signal
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx) // Stop the application gracefully
}
