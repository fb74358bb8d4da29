package main

import "duet/cmd"

func main() {
	cmd.Execute()
}
