package config

// EnvConfigPath names a config file when --config is not given
const EnvConfigPath = "CLICKLABEL_CONFIG"

const (
	DefaultDataDir    = "data/"
	DefaultResultPath = "labels/df.csv"
	DefaultRows       = 2
	DefaultColumns    = 4
	DefaultFontSize   = 10
	DefaultAddr       = ":8888"
	DefaultMaxTilePx  = 320

	DefaultPrimaryLabel   = "Cat meme"
	DefaultSecondaryLabel = "Dog meme"
	DefaultPrimaryColor   = "red"
	DefaultSecondaryColor = "blue"
)

// Default returns a fresh Config populated with the default values.
// Slices are newly allocated on every call.
func Default() Config {
	return Config{
		DataDir:    DefaultDataDir,
		ResultPath: DefaultResultPath,
		Labels:     []string{DefaultPrimaryLabel, DefaultSecondaryLabel},
		Colors:     []string{DefaultPrimaryColor, DefaultSecondaryColor},
		Rows:       DefaultRows,
		Columns:    DefaultColumns,
		FontSize:   DefaultFontSize,
		Addr:       DefaultAddr,
		MaxTilePx:  DefaultMaxTilePx,
	}
}
