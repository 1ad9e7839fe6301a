package main

import (
	"fmt"
	"io"

	"github.com/signadot/l5x-format/go-l5x/encode"
	"github.com/signadot/l5x-format/go-l5x/logix"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	for _, file := range files(args) {
		tags, err := loadTags(cfg.MainConfig, cc, file)
		if err != nil {
			return err
		}
		if err := show(cfg.MainConfig, cc.Out, tags, names(tags), cfg.Bits); err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
	}
	return nil
}

func names(ms []*logix.Member) []string {
	res := make([]string, len(ms))
	for i, m := range ms {
		res[i] = m.Name()
	}
	return res
}

// show writes members in the output form chosen by the main options.
// names are the full tag names of the members.
func show(cfg *MainConfig, w io.Writer, ms []*logix.Member, names []string, bits bool) error {
	switch {
	case cfg.Y, cfg.J:
		return dump(cfg, w, ms, names)
	case cfg.X:
		for i, m := range ms {
			var err error
			if names[i] == m.Name() {
				err = encode.EncodeTag(m, w)
			} else {
				err = encode.Encode(m.Value(), w)
			}
			if err != nil {
				return err
			}
		}
		return nil
	}
	opts := append(cfg.encOpts(w), encode.EncodeBits(bits))
	for _, m := range ms {
		if err := encode.Text(m, w, opts...); err != nil {
			return err
		}
	}
	return nil
}
