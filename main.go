package main

import "github.com/Aashish23092/irbn-report-extractor/cli"

func main() {
	cli.Execute()
}
