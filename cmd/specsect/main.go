package main

import "github.com/rkoval/specsect/internal/cli"

func main() {
	cli.Execute()
}
