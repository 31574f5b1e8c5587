package main

import "github.com/Spoje-NET/abo-parser/cmd"

func main() {
	cmd.Execute()
}
