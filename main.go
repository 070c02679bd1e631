package main

import "github.com/vagalivre/vagalivre/cmd"

func main() {
	cmd.Execute()
}
