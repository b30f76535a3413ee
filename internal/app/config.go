package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/mpcexport/internal/synth"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProblemPath  string   // .hcl/.yaml file or directory
	TemplateDirs []string // copied into Directory, in order

	// Build options, echoed into the templates.
	Directory       string
	CasadiOptiflags string
	CasadiLib       string
	CasadiInc       string
	CasadiObj       string
	SourceFiles     string
	Executable      string

	LayoutReport string // optional path of the HCL offset report
	Print        bool   // dump the rendered artifacts to the output

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills unset build options with their
// defaults. CasadiOptiflags defaults to empty and is left as given.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProblemPath == "" {
		return nil, errors.New("ProblemPath is a required configuration field and cannot be empty")
	}
	if _, ok := logLevels[cfg.LogLevel]; cfg.LogLevel != "" && !ok {
		return nil, fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}

	def := synth.DefaultBuildOptions()
	setDefault(&cfg.Directory, def.Directory)
	setDefault(&cfg.CasadiLib, def.CasadiLib)
	setDefault(&cfg.CasadiInc, def.CasadiInc)
	setDefault(&cfg.CasadiObj, def.CasadiObj)
	setDefault(&cfg.SourceFiles, def.SourceFiles)
	setDefault(&cfg.Executable, def.Executable)
	setDefault(&cfg.LogLevel, "info")
	setDefault(&cfg.LogFormat, "text")
	return &cfg, nil
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// BuildOptions returns the build options the synthesizer echoes.
func (c *Config) BuildOptions() synth.BuildOptions {
	return synth.BuildOptions{
		Directory:       c.Directory,
		CasadiOptiflags: c.CasadiOptiflags,
		CasadiLib:       c.CasadiLib,
		CasadiInc:       c.CasadiInc,
		CasadiObj:       c.CasadiObj,
		SourceFiles:     c.SourceFiles,
		Executable:      c.Executable,
	}
}
