package main

import "github.com/bmatsuo/somelisp/cmd"

func main() {
	cmd.Execute()
}
