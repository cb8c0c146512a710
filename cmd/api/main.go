package main

import (
	"varejo_pos/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	routes.Run()
}
