package config

const (
	defaultConfigPath    = "~/.config/assetman/config.toml"
	defaultDataDir       = "~/.local/share/assetman"
	defaultLogDir        = "~/.local/share/assetman/logs"
	defaultInterfacesDir = "~/.config/assetman/interfaces"
	defaultStoreFile     = "assetman.db"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultStubMarker    = "ASSET MANAGER"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:       defaultDataDir,
			LogDir:        defaultLogDir,
			InterfacesDir: defaultInterfacesDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Editor: Editor{
			CheckCode: true,
		},
		Render: Render{
			StubMarker: defaultStubMarker,
		},
	}
}
