package cmd

import (
	"fmt"
	"log"

	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/keystore"
	"github.com/spf13/cobra"
)

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the account address for the private key",
	Run:   addressRun,
}

func init() {
	rootCmd.AddCommand(addressCmd)
}

func addressRun(cmd *cobra.Command, args []string) {
	privateKey, err := keystore.Load(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(keystore.AccountID(privateKey))
}
