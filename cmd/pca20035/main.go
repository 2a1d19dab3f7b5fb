package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/platinasystems/flags"
	"github.com/platinasystems/parms"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"pca20035/internal/adp536x"
	"pca20035/internal/board"
	"pca20035/internal/i2cbus"
	"pca20035/internal/regacc"
	"pca20035/internal/server"
)

const usage = "pca20035 [-slow] [-no-verify] [-monitor] [-bus NAME] [-port N]"

type options struct {
	Fast              bool
	SkipIdentityCheck bool
	Monitor           bool
	Help              bool
	Bus               string
	Port              int
}

func parseArgs(args []string) (opts options, err error) {
	flag, args := flags.New(args, "-slow", "-no-verify", "-monitor", "-h")
	parm, args := parms.New(args, "-bus", "-port")
	if len(args) > 0 {
		return opts, fmt.Errorf("unexpected %q", args)
	}

	opts.Fast = !flag.ByName["-slow"]
	opts.SkipIdentityCheck = flag.ByName["-no-verify"]
	opts.Monitor = flag.ByName["-monitor"]
	opts.Help = flag.ByName["-h"]
	opts.Bus = parm.ByName["-bus"]

	opts.Port = 3000
	if s := parm.ByName["-port"]; s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > 65535 {
			return opts, fmt.Errorf("invalid -port %q", s)
		}
		opts.Port = n
	}
	return opts, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("%v\nusage: %s", err, usage)
	}
	if opts.Help {
		log.Fatalf("usage: %s", usage)
	}

	log.Println("Starting pca20035 power bring-up...")

	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	bus, err := i2creg.Open(opts.Bus)
	if err != nil {
		log.Fatalf("failed to open I2C: %v", err)
	}
	defer bus.Close()

	cfg := adp536x.DefaultConfig()
	cfg.Fast = opts.Fast
	cfg.SkipIdentityCheck = opts.SkipIdentityCheck
	// State of charge only updates with the fuel gauge running.
	cfg.FuelGauge = opts.Monitor

	xfer := i2cbus.New(bus)
	tr, err := bringUp(xfer, cfg)
	if err != nil {
		log.Fatalf("ADP536x bring-up failed: %v", err)
	}
	if f, err := xfer.Speed(); err != nil {
		log.Printf("Bus clock left at adapter default: %v", err)
	} else if f != 0 {
		log.Printf("Bus clock set to %s", f)
	}
	log.Printf("Power Initialized: ADP536x (Addr: 0x%X) on %s", adp536x.Addr, bus)

	if !opts.Monitor {
		return
	}
	if err := server.Run(opts.Port, adp536x.NewMonitor(tr)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// bringUp runs the board power sequence, reporting a bus fault as an error
// so it can be logged before exiting.
func bringUp(tr regacc.Transport, cfg adp536x.Config) (_ regacc.Transport, err error) {
	defer regacc.Recover(&err)
	return board.PowerMgmtInit(tr, cfg), nil
}
