package report

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// RenderTable writes the human-readable form of the report. A valid file
// gets the single confirmation line; an invalid one gets a violation table
// followed by a summary.
func (r *Report) RenderTable(w io.Writer) error {
	if r.Valid() {
		_, err := fmt.Fprintln(w, "Valid ASDF File!")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CLASS\tPATH\tRULE\tMESSAGE")
	fmt.Fprintln(tw, "-----\t----\t----\t-------")
	for _, v := range r.Violations {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Class, v.Path, v.Rule, v.Message)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s: %d violations (%d structural, %d semantic) in %s\n",
		r.File, r.Summary.Total, r.Summary.Structural, r.Summary.Semantic, r.Summary.Duration)
	return err
}
