package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/govq/imageio"
	"github.com/hupe1980/govq/raster"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeGray(t *testing.T, dir string) string {
	t.Helper()
	row := []byte{0, 0, 97, 97, 128, 128, 160, 160}
	pix := bytes.Repeat(row, 4)
	path := filepath.Join(dir, "frame.raw")
	require.NoError(t, os.WriteFile(path, pix, 0o600))
	return path
}

func TestCompressCmd_Definition(t *testing.T) {
	cmd := newCompressCmd(&rootFlags{})
	assert.Equal(t, "compress <input> [codewords [mode]]", cmd.Use)

	flags := cmd.Flags()
	for _, name := range []string{"output", "plot", "width", "height", "codewords", "shape", "mode", "shrink", "workers"} {
		assert.NotNil(t, flags.Lookup(name), name)
	}
	assert.Equal(t, "n", flags.Lookup("codewords").Shorthand)
	assert.Equal(t, "352", flags.Lookup("width").DefValue)
	assert.Equal(t, "288", flags.Lookup("height").DefValue)
}

func TestCompressCmd_Gray(t *testing.T) {
	dir := t.TempDir()
	in := writeGray(t, dir)
	plot := filepath.Join(dir, "plot.png")
	metrics := filepath.Join(dir, "metrics.prom")

	out, err := runCLI(t, "compress", in, "4", "1",
		"--width", "8", "--height", "4",
		"--plot", plot,
		"--metrics-out", metrics,
	)
	require.NoError(t, err)

	assert.Contains(t, out, "shape 1x2, psnr inf dB")
	assert.Contains(t, out, "gray")
	assert.Contains(t, out, "frame.vq.raw")

	want, err := os.ReadFile(in)
	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(dir, "frame.vq.raw"))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	data, err := os.ReadFile(plot)
	require.NoError(t, err)
	img, err := imageio.Decode("plot.png", data, imageio.Geometry{})
	require.NoError(t, err)
	assert.Equal(t, 256, img.Width)
	red, err := img.Plane(raster.Red)
	require.NoError(t, err)
	green, err := img.Plane(raster.Green)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), red.At(97, 97))
	assert.Zero(t, green.At(97, 97), "codeword is red")
	assert.Equal(t, uint8(0xff), green.At(5, 5), "background is white")

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `govq_compress_total{status="ok"} 1`)
}

func TestCompressCmd_RGBCompressedOutput(t *testing.T) {
	dir := t.TempDir()
	w, h := 8, 8
	r, g, b := make([]uint8, w*h), make([]uint8, w*h), make([]uint8, w*h)
	for i := range r {
		r[i] = uint8(i * 4)
		g[i] = uint8(255 - i*4)
		b[i] = 50
	}
	src, err := raster.NewRGB(w, h, r, g, b)
	require.NoError(t, err)
	data, err := imageio.Encode("in.rgb.zst", src)
	require.NoError(t, err)
	in := filepath.Join(dir, "in.rgb.zst")
	require.NoError(t, os.WriteFile(in, data, 0o600))

	dest := filepath.Join(dir, "out", "result.rgb.lz4")
	out, err := runCLI(t, "compress", in, "-n", "1", "--shape", "2x2",
		"--width", "8", "--height", "8", "--output", dest, "--workers", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "red")
	assert.Contains(t, out, "blue")

	data, err = os.ReadFile(dest)
	require.NoError(t, err)
	img, err := imageio.Decode(dest, data, imageio.Geometry{Width: 8, Height: 8})
	require.NoError(t, err)
	assert.True(t, img.IsColor())
	blue, err := img.Plane(raster.Blue)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{50}, w*h), blue.Pix)
}

func TestCompressCmd_PositionalMode(t *testing.T) {
	dir := t.TempDir()
	in := writeGray(t, dir)

	out, err := runCLI(t, "compress", in, "1", "3", "--width", "8", "--height", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "shape 4x4")
}

func TestCompressCmd_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	in := writeGray(t, dir)
	cfg := filepath.Join(dir, "govq.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("shape: 1x2\ncodewords: 4\ninput:\n  width: 8\n  height: 4\n"), 0o600))

	out, err := runCLI(t, "--config", cfg, "compress", in)
	require.NoError(t, err)
	assert.Contains(t, out, "psnr inf dB")
}

func TestCompressCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	in := writeGray(t, dir)

	tests := []struct {
		name string
		args []string
	}{
		{"UnknownMode", []string{"compress", in, "4", "7", "--width", "8", "--height", "4"}},
		{"BadCodewords", []string{"compress", in, "many", "--width", "8", "--height", "4"}},
		{"TooManyCodewords", []string{"compress", in, "-n", "300", "--width", "8", "--height", "4"}},
		{"NotDivisible", []string{"compress", in, "--shape", "4x4", "--width", "16", "--height", "2"}},
		{"SizeMismatch", []string{"compress", in, "--width", "10", "--height", "4"}},
		{"Missing", []string{"compress", filepath.Join(dir, "nope.raw"), "--retries", "1"}},
		{"MissingNoRetry", []string{"compress", filepath.Join(dir, "nope.raw"), "--retries", "0"}},
		{"ModeZero", []string{"compress", in, "4", "0", "--width", "8", "--height", "4"}},
		{"ModeAlias", []string{"compress", in, "4", "2x2", "--width", "8", "--height", "4"}},
		{"PlotNeedsPairs", []string{"compress", in, "-n", "1", "--width", "8", "--height", "4", "--plot", filepath.Join(dir, "p.png")}},
		{"BadLogLevel", []string{"--log-level", "loud", "compress", in}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in      string
		want    location
		wantErr bool
	}{
		{in: "a/b.raw", want: location{scheme: "file", name: "a/b.raw"}},
		{in: "s3://bucket/frames/f.raw", want: location{scheme: "s3", bucket: "bucket", name: "frames/f.raw"}},
		{in: "minio://localhost:9000/bkt/x.rgb", want: location{scheme: "minio", endpoint: "localhost:9000", bucket: "bkt", name: "x.rgb"}},
		{in: "s3://bucket", wantErr: true},
		{in: "minio://host/bucket", wantErr: true},
		{in: "gs://bucket/key", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLocation(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultOutputName(t *testing.T) {
	assert.Equal(t, "a.vq.raw", defaultOutputName("a.raw"))
	assert.Equal(t, "a.vq.rgb.zst", defaultOutputName("a.rgb.zst"))
	assert.Equal(t, "a.b.vq.png.lz4", defaultOutputName("a.b.png.lz4"))

	loc := location{scheme: "s3", bucket: "b", name: "frames/f.raw"}
	assert.Equal(t, "frames/f.vq.raw", loc.sibling(defaultOutputName(loc.base())).name)
}
