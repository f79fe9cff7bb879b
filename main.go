/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/kbrick/rcx/cmd"

func main() {
	cmd.Execute()
}
