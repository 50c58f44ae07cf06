package main

import "github.com/noah-isme/course-conflict-checker/internal/cli"

func main() {
	cli.Execute()
}
