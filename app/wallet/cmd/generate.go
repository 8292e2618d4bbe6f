package cmd

import (
	"log"

	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/keystore"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new key pair",
	Run:   generateRun,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func generateRun(cmd *cobra.Command, args []string) {
	privateKey, err := keystore.Generate()
	if err != nil {
		log.Fatal(err)
	}

	if err := keystore.Save(getPrivateKeyPath(), privateKey); err != nil {
		log.Fatal(err)
	}
}
