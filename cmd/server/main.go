package main

import (
	"os"

	"chatgen/backend/internal/app"
)

// @title                       Chatgen API
// @version                     1.0
// @description                 Chat backend with background reply generation on Ollama. Replies stream over the live websocket at /api/v1/ws.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	os.Exit(app.Run())
}
