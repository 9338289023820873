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
	"os"

	"golang.org/x/sys/unix"
)

type termKeyboard struct {
	file *os.File
}

func newTermKeyboard(file *os.File) *termKeyboard {
	return &termKeyboard{file: file}
}

// Poll checks for a pending byte with a zero-timeout select, reading it only
// when one is waiting. The keyboard status register reads through here.
func (kb *termKeyboard) Poll() (byte, bool) {
	fd := int(kb.file.Fd())

	var readfds unix.FdSet
	readfds.Set(fd)

	n, err := unix.Select(fd+1, &readfds, nil, nil, &unix.Timeval{})

	if err != nil || n == 0 {
		return 0, false
	}

	key, err := kb.ReadByte()

	if err != nil {
		return 0, false
	}

	return key, true
}

func (kb *termKeyboard) ReadByte() (byte, error) {
	scratch := make([]byte, 1)

	for {
		n, err := kb.file.Read(scratch)

		if n > 0 {
			return scratch[0], nil
		}

		if err != nil {
			return 0, err
		}
	}
}
