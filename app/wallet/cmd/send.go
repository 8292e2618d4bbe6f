package cmd

import (
	"fmt"
	"log"

	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/database"
	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/keystore"
	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var (
	url   string
	to    string
	value uint
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Sign and submit a transaction to the node",
	Run:   sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the node.")
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Account receiving the transaction.")
	sendCmd.Flags().UintVarP(&value, "value", "v", 0, "Value to send.")
}

func sendRun(cmd *cobra.Command, args []string) {
	privateKey, err := keystore.Load(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	fromID := keystore.AccountID(privateKey)

	toID, err := database.ToAccountID(to)
	if err != nil {
		log.Fatal(err)
	}

	tx, err := database.NewTx(fromID, toID, value)
	if err != nil {
		log.Fatal(err)
	}

	signedTx, err := tx.Sign(privateKey)
	if err != nil {
		log.Fatal(err)
	}

	resp, err := resty.New().R().
		SetHeader("Content-Type", "application/json").
		SetBody(signedTx).
		Post(fmt.Sprintf("%s/v1/tx/submit", url))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(resp.String())
}
