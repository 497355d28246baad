package main

import "sortmarks/cmd"

func main() {
	cmd.Execute()
}
