package main

import "github.com/alexiusacademia/gobridge/cmd"

func main() {
	cmd.Execute()
}
