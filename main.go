package main

import (
	"github.com/SwiftKart/SwiftKart-Backend/api"
)

var envPath string = "."

func main() {
	server := api.NewServer(envPath)
	defer server.Stop()

	server.Start()
}
