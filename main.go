// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"os/user"

	"smpl/repl"
)

func main() {
	currentUser, err := user.Current()
	if err != nil {
		fmt.Printf("Error getting current user: %v\n", err)
		return
	}

	fmt.Printf("Welcome to the SMPL REPL, %s!\n", currentUser.Username)
	fmt.Println("Enter a program; it is compiled once a line ends with '.'")
	repl.Start(os.Stdin, os.Stdout)
}
