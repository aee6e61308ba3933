package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"ippvm/internal/config"
	"ippvm/internal/logger"
	"ippvm/internal/runner"
	"ippvm/pkg/color"
	"ippvm/pkg/interpreter"
)

// Main entry point for the IPPcode18 interpreter.
func main() {
	err := run(os.Args[1:])
	if err == nil {
		return
	}
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}

	code := interpreter.ExitCode(err)
	fmt.Fprintln(os.Stderr, color.Error(code, err.Error()))
	os.Exit(code)
}

func run(args []string) error {
	options := runner.Options{}
	var configPath string
	var noColor bool

	fs := flag.NewFlagSet("ippvm", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&options.Source, "source", "", "Program file (text, XML or image)")
	fs.StringVar(&options.Input, "input", "", "File read by READ instead of stdin")
	fs.StringVar(&configPath, "config", "", "Configuration file (default: nearest "+config.FileName+")")
	fs.StringVar(&options.Emit, "emit", "", "Convert the program instead of running it (xml, image)")
	fs.StringVar(&options.Output, "o", "", "Output file for -emit (default stdout)")
	fs.BoolVar(&options.Trace, "trace", false, "Log every executed instruction")
	fs.BoolVar(&options.Verbose, "v", false, "Verbose mode")
	fs.BoolVar(&noColor, "n", false, "No color")
	help := fs.Bool("h", false, "Show help")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(fs)
			return err
		}
		return interpreter.Errorf(interpreter.KindArgumentUsage, "%v", err)
	}
	if *help {
		usage(fs)
		return flag.ErrHelp
	}
	if fs.NArg() > 0 {
		return interpreter.Errorf(interpreter.KindArgumentUsage, "unexpected argument %q", fs.Arg(0))
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["input"] {
		options.Input = cfg.InputPath()
	}
	if !set["trace"] {
		options.Trace = cfg.Run.Trace
	}
	if !set["v"] {
		options.Verbose = cfg.Log.Verbose
	}
	if !set["n"] {
		noColor = !cfg.Log.Color
	}
	options.NoColor = noColor

	logger.Init(os.Stderr, options.Verbose || options.Trace, noColor)

	log.Debug("Starting", "source", options.Source, "input", options.Input, "emit", options.Emit)
	return options.Run()
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Default(), nil
	}
	return config.FindAndLoad(wd)
}

func usage(fs *flag.FlagSet) {
	fmt.Printf("Usage: %s -source FILE [options]\n", fs.Name())
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
}
