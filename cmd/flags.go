package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/clicklabel/internal/config"
)

// configFlags binds the session settings that can be given on the command
// line. Only flags the user actually set override the config file.
type configFlags struct {
	configPath string
	dataDir    string
	resultPath string
	labels     []string
	colors     []string
	rows       int
	columns    int
	fontSize   int
	addr       string
	maxTilePx  int
}

func (f *configFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", "", "Path to a YAML or TOML config file (env "+config.EnvConfigPath+")")
	flags.StringVar(&f.dataDir, "data-dir", config.DefaultDataDir, "Directory containing the images to label")
	flags.StringVar(&f.resultPath, "result-path", config.DefaultResultPath, "CSV file labels are read from and saved to")
	flags.StringSliceVar(&f.labels, "labels", []string{config.DefaultPrimaryLabel, config.DefaultSecondaryLabel}, "Two labels, for left and right click")
	flags.StringSliceVar(&f.colors, "colors", []string{config.DefaultPrimaryColor, config.DefaultSecondaryColor}, "Two colors, one per label (names, r/g/b/c/m/y/k/w, tab:<name>, C0-C9, #rgb or #rrggbb[aa])")
	flags.IntVar(&f.rows, "rows", config.DefaultRows, "Rows per labeling grid")
	flags.IntVar(&f.columns, "columns", config.DefaultColumns, "Columns per labeling grid")
	flags.IntVar(&f.fontSize, "font-size", config.DefaultFontSize, "Font size for titles and captions")
	flags.StringVarP(&f.addr, "addr", "a", config.DefaultAddr, "Address to listen on")
	flags.IntVar(&f.maxTilePx, "max-tile-px", config.DefaultMaxTilePx, "Largest side of a rendered tile, in pixels")
}

// resolve loads the config file and applies changed flags on top. The
// result is not validated.
func (f *configFlags) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = f.dataDir
	}
	if flags.Changed("result-path") {
		cfg.ResultPath = f.resultPath
	}
	if flags.Changed("labels") {
		cfg.Labels = f.labels
	}
	if flags.Changed("colors") {
		cfg.Colors = f.colors
	}
	if flags.Changed("rows") {
		cfg.Rows = f.rows
	}
	if flags.Changed("columns") {
		cfg.Columns = f.columns
	}
	if flags.Changed("font-size") {
		cfg.FontSize = f.fontSize
	}
	if flags.Changed("addr") {
		cfg.Addr = f.addr
	}
	if flags.Changed("max-tile-px") {
		cfg.MaxTilePx = f.maxTilePx
	}

	return cfg, nil
}
