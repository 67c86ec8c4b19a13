// Package cmd defines the ds4drv command line surface.
package cmd

// LogOptions configures the process-wide log destination and level.
type LogOptions struct {
	Level   string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"DS4DRV_LOG_LEVEL"`
	File    string `help:"Write logs to this file instead of the console" env:"DS4DRV_LOG_FILE"`
	RawFile string `help:"Write hex dumps of raw reports to this file" env:"DS4DRV_LOG_RAW_FILE"`
}

// CLI is the root kong grammar.
type CLI struct {
	Log        LogOptions `embed:"" prefix:"log."`
	ConfigPath string     `name:"config" help:"Path to a config file" env:"DS4DRV_CONFIG"`

	Run    Run           `cmd:"" default:"withargs" help:"Run the DualShock 4 driver"`
	Config ConfigCommand `cmd:"" help:"Configuration helpers"`
}
