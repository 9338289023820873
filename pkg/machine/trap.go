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

package machine

import (
	"bufio"
	"errors"
	"fmt"
)

const haltMessage = "Thanks for playing!\n"

const inputPrompt = "Enter a character: "

func (mc *Machine) keyboard() (Keyboard, error) {
	if mc.Devices == nil || mc.Devices.Keyboard == nil {
		return nil, errors.New("No keyboard device")
	}

	return mc.Devices.Keyboard, nil
}

func (mc *Machine) display() (*bufio.Writer, error) {
	if mc.Devices == nil || mc.Devices.Display == nil {
		return nil, errors.New("No display device")
	}

	return mc.Devices.Display, nil
}

// Service routines run in place of the trap-table code a full operating
// system would install in low memory. The caller has already placed the
// return address in R7 and left the trap vector in the instruction's low
// byte. String walks go through the machine's read path, so the usual
// device-register mapping applies.
func (mc *Machine) trap(vector uint16) error {
	switch vector {

	// Read one character, no echo, into R0
	case TRAP_GETC:
		keyboard, err := mc.keyboard()

		if err != nil {
			return fmt.Errorf("GETC: %v", err)
		}

		key, err := keyboard.ReadByte()

		if err != nil {
			return fmt.Errorf("GETC: %v", err)
		}

		mc.State.Registers[0] = uint16(key)

		mc.setFlags(mc.State.Registers[0])

	// Write the low byte of R0
	case TRAP_OUT:
		display, err := mc.display()

		if err != nil {
			return fmt.Errorf("OUT: %v", err)
		}

		if err := display.WriteByte(byte(mc.State.Registers[0])); err != nil {
			return fmt.Errorf("OUT: %v", err)
		}

		if err := display.Flush(); err != nil {
			return fmt.Errorf("OUT: %v", err)
		}

	// Write the word string at R0, one character per word
	case TRAP_PUTS:
		display, err := mc.display()

		if err != nil {
			return fmt.Errorf("PUTS: %v", err)
		}

		for addr := mc.State.Registers[0]; ; addr++ {
			c := mc.read(addr)

			if c == 0 {
				break
			}

			if err := display.WriteByte(byte(c)); err != nil {
				return fmt.Errorf("PUTS: %v", err)
			}
		}

		if err := display.Flush(); err != nil {
			return fmt.Errorf("PUTS: %v", err)
		}

	// Prompt for one character, echo it, place it in R0
	case TRAP_IN:
		display, err := mc.display()

		if err != nil {
			return fmt.Errorf("IN: %v", err)
		}

		keyboard, err := mc.keyboard()

		if err != nil {
			return fmt.Errorf("IN: %v", err)
		}

		if _, err := display.WriteString(inputPrompt); err != nil {
			return fmt.Errorf("IN: %v", err)
		}

		if err := display.Flush(); err != nil {
			return fmt.Errorf("IN: %v", err)
		}

		key, err := keyboard.ReadByte()

		if err != nil {
			return fmt.Errorf("IN: %v", err)
		}

		if err := display.WriteByte(key); err != nil {
			return fmt.Errorf("IN: %v", err)
		}

		if err := display.Flush(); err != nil {
			return fmt.Errorf("IN: %v", err)
		}

		mc.State.Registers[0] = uint16(key)

		mc.setFlags(mc.State.Registers[0])

	// Write the byte string at R0, two characters per word, low byte first
	case TRAP_PUTSP:
		display, err := mc.display()

		if err != nil {
			return fmt.Errorf("PUTSP: %v", err)
		}

		for addr := mc.State.Registers[0]; ; addr++ {
			word := mc.read(addr)

			if word == 0 {
				break
			}

			if err := display.WriteByte(byte(word)); err != nil {
				return fmt.Errorf("PUTSP: %v", err)
			}

			if high := byte(word >> 8); high != 0 {
				if err := display.WriteByte(high); err != nil {
					return fmt.Errorf("PUTSP: %v", err)
				}
			}
		}

		if err := display.Flush(); err != nil {
			return fmt.Errorf("PUTSP: %v", err)
		}

	// Print the parting message and end the run loop
	case TRAP_HALT:
		display, err := mc.display()

		if err != nil {
			return fmt.Errorf("HALT: %v", err)
		}

		if _, err := display.WriteString(haltMessage); err != nil {
			return fmt.Errorf("HALT: %v", err)
		}

		if err := display.Flush(); err != nil {
			return fmt.Errorf("HALT: %v", err)
		}

		mc.State.Halted = true

	default:
		return fmt.Errorf("unknown trap vector %#02x", vector)
	}

	return nil
}
