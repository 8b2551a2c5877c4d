package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Embedded default configuration. Every vocabulary table the engine matches
// against lives here so new banks and providers are configuration changes,
// not code changes.
const defaultConfigYAML = `
engine:
  currency: PKR
  phone_prefix: "03"
  reassembly_window: 3
  thresholds:
    deposit_min: 1000
    balance_min: 1000000
  segmentation:
    min_separation: 5
    min_confidence: 0.8
    cluster_radius: 12
  banks:
    full:
      meezan bank: Meezan Bank
      bank alfalah: Bank Alfalah
      habib bank: Habib Bank
      united bank: United Bank
      mcb bank: MCB Bank
      allied bank: Allied Bank
      national bank: National Bank
      faysal bank: Faysal Bank
      js bank: JS Bank
      askari bank: Askari Bank
      bank al habib: Bank Al Habib
      soneri bank: Soneri Bank
      standard chartered: Standard Chartered
    abbrev:
      hbl: HBL
      ubl: UBL
      mcb: MCB
      nbp: NBP
      abl: ABL
      bafl: BAFL
      bahl: BAHL
      scb: SCB
  transaction_types:
    specific:
      - raast
      - ibft
      - atm withdrawal
      - pos purchase
      - online transfer
      - fund transfer
      - internal transfer
      - cheque
      - clearing
      - remittance
      - salary
      - bill payment
    generic:
      - deposit
      - withdrawal
      - debit
      - credit
      - payment
      - charges
      - cash
  header_markers:
    - statement date
    - statement period
    - statement of account
    - txn. type
    - txn type
    - value date
    - withdrawal deposit
    - debit credit balance
    - account no
    - account number
    - account title
    - opening balance
    - closing balance
    - running balance
    - page no
  name_exclusions:
    - BANK
    - JAZZCASH
    - EASYPAISA
    - MEEZAN
    - ALFALAH
    - RAAST
    - IBFT
    - PKR
    - AMOUNT
    - TOTAL
    - FEE
    - TRANSACTION
    - TRANSFER
    - PAYMENT
    - RECEIPT
    - ACCOUNT
    - MOBILE
    - LIMITED
    - SUCCESSFUL
    - WALLET
  providers:
    - name: JazzCash
      keywords: [jazzcash, jazz cash]
    - name: EasyPaisa
      keywords: [easypaisa, easy paisa]
    - name: Meezan Bank
      keywords: [meezan]
    - name: Alfalah Bank
      keywords: [alfalah]
    - name: JazzCash
      keywords: [mobilink microfinance]
    - name: EasyPaisa
      keywords: [telenor microfinance]
    - name: Meezan Bank
      keywords: [raast]
    - name: Alfalah Bank
      keywords: [alfa wallet]
`

var (
	cfgFile string
	verbose bool
	rootCmd = &cobra.Command{
		Use:   "hisaab [filename]",
		Short: "Extract structured records from OCR'd financial documents",
		Long: `hisaab turns noisy OCR text of bank statements and mobile-payment
receipts into structured transaction and account records.`,
		Args: cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 1 {
				viper.Set("target", args[0])
				handler(extractCmd, []string{})
				return
			}
			cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default is ./.hisaab.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func initLogging() {
	if !verbose {
		log.SetOutput(io.Discard)
	} else {
		log.SetFlags(log.Ltime | log.Lmsgprefix)
		log.SetPrefix("INFO: ")
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".hisaab")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := viper.ReadConfig(bytes.NewBufferString(defaultConfigYAML)); err != nil {
				fmt.Printf("Error loading embedded configuration: %v\n", err)
				os.Exit(1)
			}
		} else {
			fmt.Printf("Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}
