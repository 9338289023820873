// Copyright (C) 2023  The calliope-vm Authors

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"golang.org/x/term"

	"github.com/calliope-vm/lc3/pkg/encoding"
	"github.com/calliope-vm/lc3/pkg/machine"
)

var helpvar bool
var pcvar string

const usage = "lc3 <image-file> [<image-file> ...]"

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.StringVar(&pcvar, "pc", "", "Overrides the initial program counter")
	flag.Parse()
}

func parseAddr(text string) (uint16, error) {
	if addr, err := encoding.DecodeHex(text); err == nil {
		return addr, nil
	}

	value, err := encoding.DecodeInt(text)

	if err != nil {
		return 0, err
	}

	return uint16(value), nil
}

func lc3() int {
	if helpvar {
		fmt.Println(usage)
		return 0
	}

	args := flag.Args()

	if len(args) < 1 {
		fmt.Println(usage)
		return 2
	}

	var mc machine.Machine
	mc.State.Reset()

	if pcvar != "" {
		addr, err := parseAddr(pcvar)

		if err != nil {
			log.Printf("invalid program counter %q", pcvar)
			return 2
		}

		mc.State.Program = addr
	}

	for _, arg := range args {
		file, err := os.Open(arg)

		if err != nil {
			log.Printf("failed to load image: %s", err)
			return 1
		}

		if err := mc.LoadImage(file); err != nil {
			file.Close()
			log.Printf("failed to load image %s: %s", arg, err)
			return 1
		}

		file.Close()
	}

	var dh machine.DeviceHandler
	dh.Keyboard = newTermKeyboard(os.Stdin)
	dh.Display = bufio.NewWriter(os.Stdout)
	mc.Devices = &dh

	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	if interactive {
		enterRawTerm()
		defer exitRawTerm()
	}

	c := make(chan os.Signal, 1)
	defer close(c)

	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
			fmt.Println()

			if interactive {
				exitRawTerm()
			}

			os.Exit(130)
		}
	}()

	for !mc.State.Halted {
		if err := mc.Step(); err != nil {
			log.Println(err)
			return 3
		}
	}

	return 0
}

func main() {
	os.Exit(lc3())
}
