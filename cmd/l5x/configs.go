package main

import (
	"io"
	"os"

	"github.com/signadot/l5x-format/go-l5x/encode"
	"github.com/signadot/l5x-format/go-l5x/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

type MainConfig struct {
	Color  bool `cli:"name=color desc='show values in color'"`
	Strict bool `cli:"name=strict desc='reject data the tool would not write'"`
	V      bool `cli:"name=v desc='log progress to stderr'"`

	X bool `cli:"name=x aliases=xml desc='output L5X'"`
	J bool `cli:"name=j aliases=json desc='output json'"`
	Y bool `cli:"name=y aliases=yaml desc='output yaml'"`

	Out      string
	CloseOut func() error

	Log *zap.Logger

	Main *cli.Command
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{parse.Strict(cfg.Strict)}
}

func (cfg *MainConfig) colored(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return false
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var res []encode.EncodeOption
	if cfg.colored(w) && !cfg.X {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type ViewConfig struct {
	*MainConfig

	Bits bool `cli:"name=bits desc='list the bits of integers'"`
	View *cli.Command
}

type GetConfig struct {
	*MainConfig

	Bits bool `cli:"name=bits desc='list the bits of integers'"`
	Get  *cli.Command
}

type ListConfig struct {
	*MainConfig

	Bits  bool   `cli:"name=bits desc='list bit members too'"`
	Where string `cli:"name=where desc='list only members for which the expression holds'"`

	List *cli.Command
}

type FmtConfig struct {
	*MainConfig

	Data string `cli:"name=data desc='write the DATA of nested strings as quoted or array (default as read)'"`
	Fmt  *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}
