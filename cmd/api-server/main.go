package main

import "giphyexplorer/cmd/api-server/command"

func main() {
	command.Execute()
}
