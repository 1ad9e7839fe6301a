package main

import (
	"fmt"

	"github.com/signadot/l5x-format/go-l5x/logix"
	"github.com/signadot/l5x-format/go-l5x/logix/tagname"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a tag name", cli.ErrUsage)
	}
	path, err := tagname.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	for _, file := range files(args[1:]) {
		tags, err := loadTags(cfg.MainConfig, cc, file)
		if err != nil {
			return err
		}
		tag := findTag(tags, path.Root())
		if tag == nil {
			return fmt.Errorf("%s: no tag %s", file, path.Root())
		}
		m := logix.Resolve(tag, path.Path())
		if m == nil {
			return fmt.Errorf("%s: %s has no member %s", file, tag.Name(), path.Path())
		}
		if err := show(cfg.MainConfig, cc.Out, []*logix.Member{m}, []string{path.String()}, cfg.Bits); err != nil {
			return err
		}
	}
	return nil
}
