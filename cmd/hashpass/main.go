// Command hashpass prints the bcrypt hash of a passcode for use as
// admin.passcode_hash in the server configuration.
package main

import (
	"fmt"
	"os"

	"github.com/emre/notesphere/internal/pkg/auth"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpass <passcode>")
		os.Exit(2)
	}

	hash, err := auth.HashPasscode(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to hash passcode:", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
