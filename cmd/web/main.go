// @title           FloodGuard API
// @version         1.0
// @description     Backend for the FloodGuard water level monitoring dashboard.
// @host            localhost:4000
// @BasePath        /

package main

import "floodguard_backend/internal/app"

func main() {
	app.Run()
}
