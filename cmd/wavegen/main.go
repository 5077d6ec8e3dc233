package main

import "github.com/OpenTraceLab/OpenTraceWave/cmd/wavegen/cmd"

func main() {
	cmd.Execute()
}
