package main

import "github.com/J-Oliver12/AIBTCCoin-main/app/wallet/cmd"

func main() {
	cmd.Execute()
}
