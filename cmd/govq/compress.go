package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hupe1980/govq"
	"github.com/hupe1980/govq/blobstore"
	"github.com/hupe1980/govq/block"
	"github.com/hupe1980/govq/imageio"
	govqprom "github.com/hupe1980/govq/metrics/prometheus"
	"github.com/hupe1980/govq/quality"
	"github.com/hupe1980/govq/raster"
)

type compressFlags struct {
	output    string
	plot      string
	width     int
	height    int
	codewords int
	shape     string
	threshold float64
	maxRepair int
	maxIter   int
	shrink    string
	overflow  string
	workers   int
	retries   uint64
}

func newCompressCmd(rf *rootFlags) *cobra.Command {
	cf := &compressFlags{}

	cmd := &cobra.Command{
		Use:   "compress <input> [codewords [mode]]",
		Short: "Quantize an image and write the reconstruction",
		Long: `Quantize an image and write the reconstruction.

The input is a local path, s3://bucket/key or minio://host/bucket/key.
Formats follow the extension: .raw (8-bit gray), .rgb (planar color) and .png,
optionally followed by .zst or .lz4. Headerless formats use --width/--height.

The optional positional arguments are the codebook size and the block mode
(1 = 1x2, 2 = 2x2, 3 = 4x4).`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompress(cmd, rf, cf, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cf.output, "output", "o", "", "output location (default: <input>.vq.<ext> next to the input)")
	f.StringVar(&cf.plot, "plot", "", "write a PNG vector-space plot of the first channel (1x2 blocks only)")
	f.IntVar(&cf.width, "width", imageio.DefaultWidth, "width of headerless inputs")
	f.IntVar(&cf.height, "height", imageio.DefaultHeight, "height of headerless inputs")
	f.IntVarP(&cf.codewords, "codewords", "n", govq.DefaultCodewords, "codebook size (1..256)")
	f.StringVar(&cf.shape, "shape", block.TwoByTwo.String(), "block shape (1x2, 2x2, 4x4)")
	f.StringVar(&cf.shape, "mode", block.TwoByTwo.String(), "alias for --shape; accepts 1, 2, 3")
	f.Float64Var(&cf.threshold, "threshold", 1.0, "convergence threshold")
	f.IntVar(&cf.maxRepair, "max-repair", 1000, "bound on empty-cluster repair passes")
	f.IntVar(&cf.maxIter, "max-iter", 1000, "bound on centroid updates")
	f.StringVar(&cf.shrink, "shrink", "drop", "empty cluster policy during updates (drop, repair, forbid)")
	f.StringVar(&cf.overflow, "overflow", "unclamped", "seed overflow policy (unclamped, clamp, wrap)")
	f.IntVar(&cf.workers, "workers", 0, "channels trained concurrently (0 = all)")
	f.Uint64Var(&cf.retries, "retries", 3, "fetch retries for transient store errors (0 = single attempt)")
	return cmd
}

// apply overrides cfg with every flag set on the command line and with the
// positional codebook size and mode.
func (cf *compressFlags) apply(cmd *cobra.Command, cfg *govq.Config, args []string) error {
	changed := cmd.Flags().Changed
	if changed("shape") || changed("mode") {
		cfg.Shape = cf.shape
	}
	if changed("codewords") {
		cfg.Codewords = cf.codewords
	}
	if changed("threshold") {
		cfg.ConvergenceThreshold = cf.threshold
	}
	if changed("max-repair") {
		cfg.MaxRepairIterations = cf.maxRepair
	}
	if changed("max-iter") {
		cfg.MaxConvergenceIterations = cf.maxIter
	}
	if changed("shrink") {
		cfg.Shrink = cf.shrink
	}
	if changed("overflow") {
		cfg.Overflow = cf.overflow
	}
	if changed("workers") {
		cfg.Workers = cf.workers
	}
	if changed("width") {
		cfg.Input.Width = cf.width
	}
	if changed("height") {
		cfg.Input.Height = cf.height
	}

	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid codebook size %q", args[1])
		}
		cfg.Codewords = n
	}
	if len(args) > 2 {
		mode, err := strconv.Atoi(args[2])
		if err != nil || mode < 1 || mode > 3 {
			return fmt.Errorf("invalid mode %q: want 1 (1x2), 2 (2x2) or 3 (4x4)", args[2])
		}
		cfg.Shape = block.ShapeFromMode(mode).String()
	}
	return cfg.Validate()
}

func runCompress(cmd *cobra.Command, rf *rootFlags, cf *compressFlags, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := rf.loadConfig()
	if err != nil {
		return err
	}
	if err := cf.apply(cmd, &cfg, args); err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg.Log)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts = append(opts, govq.WithLogger(logger))

	var reg *prom.Registry
	if rf.metricsOut != "" {
		reg = prom.NewRegistry()
		mc, err := govqprom.New(reg, "govq")
		if err != nil {
			return err
		}
		opts = append(opts, govq.WithMetricsCollector(mc))
	}

	in, err := parseLocation(args[0])
	if err != nil {
		return err
	}
	inStore, inName, err := in.open(ctx)
	if err != nil {
		return err
	}
	retry := blobstore.DefaultRetryPolicy()
	retry.MaxRetries = cf.retries
	retry.Notify = func(err error, next time.Duration) {
		logger.Warn("fetch failed, retrying", "input", args[0], "error", err, "backoff", next)
	}
	src, err := imageio.Load(ctx, inStore, inName,
		imageio.Geometry{Width: cfg.Input.Width, Height: cfg.Input.Height}, retry)
	if err != nil {
		return err
	}

	res, err := govq.Compress(ctx, src, opts...)
	if err != nil {
		return err
	}

	out := in.sibling(defaultOutputName(in.base()))
	if cf.output != "" {
		if out, err = parseLocation(cf.output); err != nil {
			return err
		}
	}
	if err := save(ctx, out, res.Image); err != nil {
		return err
	}

	if cf.plot != "" {
		if err := writePlot(ctx, cf.plot, src, res); err != nil {
			return err
		}
	}

	report, err := quality.Compare(src, res.Image)
	if err != nil {
		return err
	}
	if err := printSummary(cmd.OutOrStdout(), res, report, out); err != nil {
		return err
	}

	if reg != nil {
		if err := prom.WriteToTextfile(rf.metricsOut, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func save(ctx context.Context, loc location, img *raster.Image) error {
	store, name, err := loc.open(ctx)
	if err != nil {
		return err
	}
	return imageio.Save(ctx, store, name, img)
}

func writePlot(ctx context.Context, dest string, src *raster.Image, res *govq.Result) error {
	if res.Shape != block.SideBySide {
		return fmt.Errorf("plot needs 1x2 blocks, got %s", res.Shape)
	}
	first := res.Channels[0]
	p, err := src.Plane(first.Channel)
	if err != nil {
		return err
	}
	vectors, err := block.Extract(p, res.Shape)
	if err != nil {
		return err
	}
	img, err := govq.VectorSpacePlot(vectors, first.Codebook)
	if err != nil {
		return err
	}

	loc, err := parseLocation(dest)
	if err != nil {
		return err
	}
	return save(ctx, loc, raster.FromImage(img))
}

func printSummary(w io.Writer, res *govq.Result, report quality.Report, out location) error {
	fmt.Fprintf(w, "run %s: %dx%d, shape %s, psnr %s dB\n",
		res.RunID, res.Image.Width, res.Image.Height, res.Shape, formatPSNR(report.PSNR))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CHANNEL\tCODEWORDS\tITERATIONS\tREPAIRS\tDROPPED\tMSE\tPSNR\tFINGERPRINT")
	for i, c := range res.Channels {
		cr := report.Channels[i]
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.3f\t%s\t%016x\n",
			c.Channel, c.Codebook.Len(), c.Stats.Iterations, c.Stats.Repairs,
			c.Stats.Dropped, cr.MSE, formatPSNR(cr.PSNR), c.Fingerprint)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "wrote %s\n", out.name)
	return err
}

func formatPSNR(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
