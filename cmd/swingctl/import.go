package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pricesusecase "swing_backend/internal/feature/prices/usecase"
	"swing_backend/internal/platform/config"
)

func importCmd(loadConfig func() (*config.Config, error), open storeOpener) *cobra.Command {
	var (
		symbol string
		file   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store the closes of a price file for a symbol",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			prices, err := readPrices(file, format)
			if err != nil {
				return err
			}

			repo, closeFn, err := open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := pricesusecase.NewImportUsecase(repo).Import(cmd.Context(), symbol, prices)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d prices for %s\n", n, symbol)
			return nil
		},
	}
	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "security code, e.g. 600519.SH")
	cmd.Flags().StringVarP(&file, "file", "f", "", "price file (csv or tushare daily response)")
	cmd.Flags().StringVar(&format, "format", "auto", "input format: auto, csv or tushare")
	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
