package config

const (
	defaultConfigPath     = "~/.config/stratis/config.toml"
	projectConfigName     = "stratis.toml"
	defaultBusAddress     = BusSystem
	defaultService        = "org.storage.stratis1"
	defaultTimeoutSeconds = 120
	defaultLogFormat      = "console"
	defaultLogLevel       = "warn"
	defaultOutputFormat   = OutputTable
	defaultColor          = ColorAuto

	// BusAddressEnv overrides bus.address when the file leaves it unset.
	BusAddressEnv = "STRATIS_BUS_ADDRESS"
)

// Well-known bus selectors.
const (
	BusSystem  = "system"
	BusSession = "session"
)

// Output formats.
const (
	OutputTable = "table"
	OutputPlain = "plain"
	OutputJSON  = "json"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Bus: Bus{
			Service:        defaultService,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Output: Output{
			Format: defaultOutputFormat,
			Color:  defaultColor,
		},
		Devices: Devices{
			Preflight: true,
		},
	}
}
