package cmd

import (
	"fmt"
	"log"

	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/keystore"
	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var balanceURL string

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Query the node for the account balance",
	Run:   balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.Flags().StringVarP(&balanceURL, "url", "u", "http://localhost:8080", "Url of the node.")
}

func balanceRun(cmd *cobra.Command, args []string) {
	privateKey, err := keystore.Load(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	accountID := keystore.AccountID(privateKey)

	resp, err := resty.New().R().
		Get(fmt.Sprintf("%s/v1/accounts/list/%s", balanceURL, accountID))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(resp.String())
}
