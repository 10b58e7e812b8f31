package main

import "github.com/jsphweid/bgmgen/cmd"

func main() {
	cmd.Execute()
}
