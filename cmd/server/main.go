package main

import "salespipe/internal/app"

// @title        Sales Pipeline API
// @version      1.0
// @description  Opportunity lifecycle, hierarchical visibility and currency presentation.
// @BasePath     /
func main() {
	app.Run()
}
