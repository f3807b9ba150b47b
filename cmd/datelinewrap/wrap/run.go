package wrap

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/golang/geo/s1"
	"github.com/golang/glog"
	"github.com/klauspost/compress/gzip"
	pgeojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/GPlates/GPlates-sub027/dateline"
	"github.com/GPlates/GPlates-sub027/geomio"
	"github.com/GPlates/GPlates-sub027/x"
)

// Wrap is the sub-command invoked when running "datelinewrap wrap".
var Wrap x.SubCommand

type options struct {
	in, out         string
	format          geomio.Format
	centralMeridian float64
	tessellate      float64
	workers         int
}

func init() {
	Wrap.Cmd = &cobra.Command{
		Use:   "wrap",
		Short: "Split the geometries of a file along the dateline",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := run(Wrap.Conf); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
	}
	Wrap.EnvPrefix = "DATELINEWRAP"

	flag := Wrap.Cmd.Flags()
	flag.StringP("in", "i", "", "Input file. A GeoJSON FeatureCollection, or one WKT "+
		"geometry per line. Files ending in .gz are decompressed.")
	flag.StringP("out", "o", "", "Output file, written in the input format. Files ending "+
		"in .gz are compressed. Writes to stdout if empty.")
	flag.String("format", "geojson", "Format of the input and output, one of [geojson, wkt]")
	flag.Float64("central_meridian", 0, "Longitude at the centre of the output map. "+
		"Geometries are cut along the opposite meridian.")
	flag.Float64("tessellate", 0, "If positive, densify output edges to follow great "+
		"circles within this many degrees.")
	flag.Int("workers", runtime.NumCPU(), "Number of geometries wrapped concurrently.")
	x.Check(Wrap.Cmd.MarkFlagRequired("in"))
}

func parseOptions(conf *viper.Viper) (options, error) {
	opt := options{
		in:              conf.GetString("in"),
		out:             conf.GetString("out"),
		centralMeridian: conf.GetFloat64("central_meridian"),
		tessellate:      conf.GetFloat64("tessellate"),
		workers:         conf.GetInt("workers"),
	}
	f, err := geomio.ParseFormat(conf.GetString("format"))
	if err != nil {
		return opt, err
	}
	if f == geomio.WKB {
		return opt, errors.Errorf("Format %q is not line oriented, use geojson or wkt", f)
	}
	opt.format = f
	if opt.workers < 1 {
		opt.workers = 1
	}
	return opt, nil
}

func (opt options) wrapper() *dateline.Wrapper {
	return dateline.New(
		dateline.WithCentralMeridian(opt.centralMeridian),
		dateline.WithTessellation(s1.Angle(opt.tessellate)*s1.Degree),
	)
}

// stats counts what a run did.
type stats struct {
	geometries int64
	parts      int64
}

func run(conf *viper.Viper) error {
	opt, err := parseOptions(conf)
	if err != nil {
		return err
	}
	data, err := readInput(opt.in)
	if err != nil {
		return err
	}
	glog.Infof("Read %s from %s", humanize.Bytes(uint64(len(data))), opt.in)

	var st stats
	var out []byte
	switch opt.format {
	case geomio.GeoJSON:
		out, err = wrapFeatures(context.Background(), opt, data, &st)
	case geomio.WKT:
		out, err = wrapWKT(context.Background(), opt, data, &st)
	}
	if err != nil {
		return err
	}
	if err := writeOutput(opt.out, out); err != nil {
		return err
	}
	glog.Infof("Wrapped %s geometries into %s parts, wrote %s",
		humanize.Comma(st.geometries), humanize.Comma(st.parts), humanize.Bytes(uint64(len(out))))
	return nil
}

// wrapFeatures wraps every feature geometry of a GeoJSON FeatureCollection
// in place. Properties and ids are kept.
func wrapFeatures(ctx context.Context, opt options, data []byte, st *stats) ([]byte, error) {
	fc, err := pgeojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrapf(err, "while reading feature collection")
	}
	w := opt.wrapper()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opt.workers)
	for i, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			in, err := geomio.FromFeatureGeometry(f.Geometry)
			if err != nil {
				return errors.Wrapf(err, "feature %d", i)
			}
			wrapped, err := geomio.Wrap(w, in)
			if err != nil {
				return errors.Wrapf(err, "feature %d", i)
			}
			if f.Geometry, err = geomio.ToFeatureGeometry(wrapped); err != nil {
				return errors.Wrapf(err, "feature %d", i)
			}
			atomic.AddInt64(&st.geometries, 1)
			atomic.AddInt64(&st.parts, int64(geomio.NumParts(wrapped)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out, err := fc.MarshalJSON()
	return out, errors.Wrapf(err, "while writing feature collection")
}

// wrapWKT wraps one WKT geometry per line. Blank lines are skipped.
func wrapWKT(ctx context.Context, opt options, data []byte, st *stats) ([]byte, error) {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(nil, 64<<20)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "while scanning WKT")
	}

	w := opt.wrapper()
	results := make([][]byte, len(lines))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opt.workers)
	for i, line := range lines {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			in, err := geomio.Decode(geomio.WKT, []byte(line))
			if err != nil {
				return errors.Wrapf(err, "line %d", i+1)
			}
			wrapped, err := geomio.Wrap(w, in)
			if err != nil {
				return errors.Wrapf(err, "line %d", i+1)
			}
			if results[i], err = geomio.Encode(geomio.WKT, wrapped); err != nil {
				return errors.Wrapf(err, "line %d", i+1)
			}
			atomic.AddInt64(&st.geometries, 1)
			atomic.AddInt64(&st.parts, int64(geomio.NumParts(wrapped)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	for _, r := range results {
		buf.Write(r)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func readInput(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "while opening %s", filename)
	}
	defer f.Close()
	var r io.Reader = f
	if filepath.Ext(filename) == ".gz" {
		gzr, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "while reading %s", filename)
		}
		defer gzr.Close()
		r = gzr
	}
	data, err := io.ReadAll(r)
	return data, errors.Wrapf(err, "while reading %s", filename)
}

func writeOutput(filename string, data []byte) error {
	if filename == "" {
		_, err := os.Stdout.Write(data)
		return errors.Wrapf(err, "while writing to stdout")
	}
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "while creating %s", filename)
	}
	var w io.Writer = f
	var gzw *gzip.Writer
	if filepath.Ext(filename) == ".gz" {
		gzw = gzip.NewWriter(f)
		w = gzw
	}
	if _, err := w.Write(data); err != nil {
		f.Close()
		return errors.Wrapf(err, "while writing %s", filename)
	}
	if gzw != nil {
		if err := gzw.Close(); err != nil {
			f.Close()
			return errors.Wrapf(err, "while compressing %s", filename)
		}
	}
	return errors.Wrapf(f.Close(), "while closing %s", filename)
}
