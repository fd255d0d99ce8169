package main

// version can be set during build with -ldflags
var version = "dev"

// @title Networking BudE slot API
// @version 1.0
// @description Featured event slots per region and curated content slots.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	setVersion(version)
	execute()
}
