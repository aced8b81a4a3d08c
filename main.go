package main

import "silvo/cmd"

func main() {
	cmd.Execute()
}
