/*
Copyright © 2025 projeto-bia
*/
package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/projeto-bia/bia-be/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded:", err)
	}
}
