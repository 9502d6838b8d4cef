package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/stellar/go/strkey"
	"github.com/urfave/cli/v2"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/config"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/export"
)

var accountFlag = &cli.StringFlag{
	Name:     "account",
	Aliases:  []string{"a"},
	Usage:    "Stellar account `ID` (G...)",
	Required: true,
}

func accountArg(c *cli.Context) (string, error) {
	account := c.String("account")
	if !strkey.IsValidEd25519PublicKey(account) {
		return "", fmt.Errorf("invalid account id %q", account)
	}
	return account, nil
}

func balancesCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "balances",
		Usage: "print an account's balances, USD values and transfer limits",
		Flags: []cli.Flag{accountFlag},
		Action: func(c *cli.Context) error {
			account, err := accountArg(c)
			if err != nil {
				return err
			}

			report, err := export.NewService(newWalletService(cfg, nil), nil).Build(c.Context, account)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ASSET\tISSUER\tBALANCE\tUSD\tMAX TRANSFERABLE")
			for _, row := range report.Rows {
				limit := "-"
				if row.MaxTransferable != nil {
					limit = row.MaxTransferable.String()
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", row.Asset, row.Issuer, row.Balance.String(), row.USD, limit)
			}
			fmt.Fprintf(tw, "TOTAL\t\t\t%s\t\n", report.TotalUSD().StringFixed(2))
			return tw.Flush()
		},
	}
}

func exportCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write an account's balances to an .xlsx file or a Google Sheet",
		Flags: []cli.Flag{
			accountFlag,
			&cli.StringFlag{Name: "out", Usage: "output `FILE` (.xlsx)"},
			&cli.StringFlag{Name: "sheet-id", Usage: "Google Sheets spreadsheet `ID`, credentials from GOOGLE_CREDENTIALS_JSON"},
		},
		Action: func(c *cli.Context) error {
			account, err := accountArg(c)
			if err != nil {
				return err
			}

			var writer export.SheetWriter
			switch {
			case c.String("out") != "":
				writer = export.NewXLSXWriter(c.String("out"))
			case c.String("sheet-id") != "":
				if cfg.GoogleCredentialsJSON == "" {
					return fmt.Errorf("GOOGLE_CREDENTIALS_JSON is required for --sheet-id")
				}
				writer, err = export.NewSheetsWriter(c.Context, c.String("sheet-id"), cfg.GoogleCredentialsJSON)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("one of --out or --sheet-id is required")
			}

			return export.NewService(newWalletService(cfg, nil), writer).Export(c.Context, account)
		},
	}
}
