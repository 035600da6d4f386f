package main

import "github.com/khrees2412/hirematch/cmd"

func main() {
	cmd.Execute()
}
