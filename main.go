/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/gtechsltn/csharp-to-js/cmd"

func main() {
	cmd.Execute()
}
