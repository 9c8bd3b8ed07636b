package app

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteReport prints report to w: a header line followed by one
// "<txid> <ancestor count>" line per transaction. Aligned output pads the
// columns for a terminal; otherwise the columns are tab-separated.
func WriteReport(w io.Writer, report *Report, aligned bool) error {
	_, err := fmt.Fprintf(w, "%d Transactions with the largest ancestry sets:\n", report.Limit)
	if err != nil {
		return err
	}

	if !aligned {
		for _, set := range report.Sets {
			_, err := fmt.Fprintf(w, "%s\t%d\n", set.TransactionID, set.AncestorCount)
			if err != nil {
				return err
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, set := range report.Sets {
		_, err := fmt.Fprintf(tw, "%s\t%d\n", set.TransactionID, set.AncestorCount)
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}
