package main

import (
	"log"
	"os"

	"github.com/maqomuz/maktab/core"
	"github.com/maqomuz/maktab/storage/local"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	kv, err := local.Open(conf.Storage.LocalPath)
	if err != nil {
		logger.Fatal(err)
	}

	// start CLI
	cli := commandLine{
		kv:   kv,
		conf: conf,
		out:  os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
