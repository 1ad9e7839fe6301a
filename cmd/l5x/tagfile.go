package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/l5x-format/go-l5x/logix"
	"github.com/signadot/l5x-format/go-l5x/logix/tagname"
	"github.com/signadot/l5x-format/go-l5x/parse"

	"github.com/scott-cotton/cli"
	"go.uber.org/zap"
)

// loadTags decodes the tags of the L5X file at path, "-" being the
// command input.
func loadTags(cfg *MainConfig, cc *cli.Context, path string) ([]*logix.Member, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	tags, err := parse.Tags(r, cfg.parseOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	cfg.Log.Info("loaded tags", zap.String("file", path), zap.Int("tags", len(tags)))
	return tags, nil
}

// files defaults an empty file list to the command input.
func files(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func findTag(tags []*logix.Member, name string) *logix.Member {
	for _, t := range tags {
		if tagname.SegmentEqual(t.Name(), name) {
			return t
		}
	}
	return nil
}
