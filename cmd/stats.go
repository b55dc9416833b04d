package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common/log"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/config"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/service"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/vo"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/migrations/0.1.0"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type statsOptions struct {
	query   vo.ReliabilityQuery
	verbose bool
}

func statsCmd() *cobra.Command {
	opts := statsOptions{}
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print status counts and the reliability ranking of the configured store",
		Long: `Load the configured store once and print the summary and the MTBF / MTTR table.

Examples:
  ship-fault-report stats
  ship-fault-report stats --year 2024 --group-by unit --sort mttr --order desc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			config.Set(cfg)
			if opts.verbose {
				log.InitLogger(cfg.Log, log.WithCaller())
			}
			__1_0.InitDataBase()

			store, err := initRecordStore()
			if err != nil {
				return errors.Wrap(err, "open store")
			}
			svc := service.NewReportService(store, nil, nil, nil)
			return printStats(cmd.Context(), cmd.OutOrStdout(), svc, opts.query)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.query.Year, "year", "", "filter by year of the occurred date, All for every year")
	f.StringVar(&opts.query.Vessel, "vessel", "", "filter by vessel")
	f.StringVar(&opts.query.Status, "status", "", "filter by status, OPEN or CLOSED")
	f.StringVar(&opts.query.GroupBy, "group-by", "vessel", "group by vessel or unit")
	f.StringVar(&opts.query.Sort, "sort", "mtbf", "rank by count, open, closed, mtbf or mttr")
	f.StringVar(&opts.query.Order, "order", "asc", "asc or desc")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "write logs as configured")
	return cmd
}

func printStats(ctx context.Context, out io.Writer, svc service.ReportService, q vo.ReliabilityQuery) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := svc.Load(ctx); err != nil {
		return err
	}
	summary, serr := svc.Summary(ctx, q.ReportQuery)
	if serr != nil {
		return serr
	}
	rel, serr := svc.Reliability(ctx, q)
	if serr != nil {
		return serr
	}

	bold := color.New(color.Bold)
	open := color.New(color.FgYellow)
	closed := color.New(color.FgGreen)
	na := color.New(color.FgHiBlack)

	bold.Fprintln(out, "Summary")
	fmt.Fprintf(out, "  total %d  %s  %s  other %d\n",
		summary.Counts.Total,
		open.Sprintf("open %d", summary.Counts.Open),
		closed.Sprintf("closed %d", summary.Counts.Closed),
		summary.Counts.Other)
	fmt.Fprintf(out, "  MTTR (%s) %s days\n", summary.ResolutionPolicy, paint(na, summary.MTTRDisplay))
	if dq := summary.DataQuality; dq.InvalidOccurred+dq.InvalidIssued+dq.InvalidClosed > 0 {
		color.New(color.FgRed).Fprintf(out, "  invalid dates: occurred %d, issued %d, closed %d\n",
			dq.InvalidOccurred, dq.InvalidIssued, dq.InvalidClosed)
	}

	window := vo.NotAvailable
	if rel.WindowDays != nil {
		window = fmt.Sprintf("%s, %d days", rel.WindowStart, *rel.WindowDays)
	}
	fmt.Fprintln(out)
	bold.Fprintf(out, "Reliability by %s (sort %s %s, window %s)\n", rel.GroupBy, rel.Sort, rel.Order, window)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tTOTAL\tOPEN\tCLOSED\tMTBF\tMTTR\tLAST UPDATE")
	for _, row := range rel.Items {
		key := row.Key
		if key == "" {
			key = "-"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\t%s\n", key, row.Counts.Total, row.Counts.Open, row.Counts.Closed,
			paint(na, row.MTBFDisplay), paint(na, row.MTTRDisplay), paint(na, row.LastActivity))
	}
	return w.Flush()
}

// paint 只给 N/A 着色
func paint(c *color.Color, s string) string {
	if s == vo.NotAvailable {
		return c.Sprint(s)
	}
	return s
}

