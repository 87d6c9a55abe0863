package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/maqomuz/maktab/core"
	"github.com/maqomuz/maktab/storage/local"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	kv   *local.KV
	conf *core.Config
	out  io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  seed                - write the built-in fallback content into the offline snapshot")
	fmt.Fprintln(cli.out, "  export [-out FILE]  - dump the offline snapshot as JSON (stdout by default)")
	fmt.Fprintln(cli.out, "  report              - print the 24h security report")
	fmt.Fprintln(cli.out, "  clearlogs           - wipe the security log")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportOut := exportCmd.String("out", "", "Destination file. Prints to stdout when omitted.")

	switch args[1] {
	case "seed":
		return cli.seed()
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.export(*exportOut)
	case "report":
		return cli.report()
	case "clearlogs":
		return cli.clearLogs()
	default:
		cli.printUsage()
		return errHelp
	}
}
