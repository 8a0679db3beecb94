package main

import "github.com/marioarbosiberica-bot/LaicaFM/cmd/laicafm-cli/cmd"

func main() {
	cmd.Execute()
}
