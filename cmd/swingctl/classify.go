package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"swing_backend/internal/feature/swing/domain/classifier"
	"swing_backend/internal/feature/swing/domain/entity"
	"swing_backend/internal/platform/config"
)

func classifyCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var (
		file    string
		format  string
		markers bool
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a price file and print the swing table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			prices, err := readPrices(file, format)
			if err != nil {
				return err
			}

			points := make([]entity.PricePoint, 0, len(prices))
			for _, p := range prices {
				points = append(points, entity.PricePoint{TradeDate: p.TradeDate, Close: p.Close})
			}
			res, err := classifier.New(cfg.Classifier).Classify(points)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := writeTable(out, res.Records); err != nil {
				return err
			}
			if markers {
				return writeMarkers(out, res.Markers)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "price file (csv with trade_date,close or a tushare daily response)")
	cmd.Flags().StringVar(&format, "format", "auto", "input format: auto, csv or tushare")
	cmd.Flags().BoolVar(&markers, "markers", false, "print the remaining red/black lines after the table")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func formatClose(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// writeTable prints one row per record with the close in its category column.
func writeTable(w io.Writer, records []entity.ClassifiedRecord) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "date")
	for _, c := range entity.Categories {
		fmt.Fprintf(tw, "\t%s", c)
	}
	fmt.Fprint(tw, "\tline\n")

	for _, r := range records {
		fmt.Fprint(tw, r.TradeDate.Format(time.DateOnly))
		for _, c := range entity.Categories {
			v := ""
			if c == r.Category {
				v = formatClose(r.Close)
			}
			fmt.Fprintf(tw, "\t%s", v)
		}
		fmt.Fprintf(tw, "\t%s\n", r.Line)
	}
	return tw.Flush()
}

func writeMarkers(w io.Writer, markers map[entity.Category]entity.ReversalMarker) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "\ncategory\tred\tblack\n")
	for _, c := range entity.Categories {
		m, ok := markers[c]
		if !ok {
			continue
		}
		red, black := "", ""
		if m.HasRed {
			red = formatClose(m.Red)
		}
		if m.HasBlack {
			black = formatClose(m.Black)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c, red, black)
	}
	return tw.Flush()
}
