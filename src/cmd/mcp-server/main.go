// Package main provides a minimal stdio MCP server entry point, for MCP
// clients that launch the server binary directly without CLI flags.
package main

import (
	"log"

	"github.com/joho/godotenv"

	"jenkins-distill/src/config"
	"jenkins-distill/src/mcp"
)

func main() {
	_ = godotenv.Load()

	registry := config.LoadRegistry()
	settings := config.LoadSettings()

	server := mcp.NewServer(registry, settings)
	if err := server.Run(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
