package main

import "github.com/vibast-solutions/ms-go-trading/cmd"

func main() {
	cmd.Execute()
}
