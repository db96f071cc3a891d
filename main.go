package main

import (
	"os"

	"myblog/service"
)

func main() {
	os.Exit(service.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
