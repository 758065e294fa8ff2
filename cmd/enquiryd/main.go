// Command enquiryd serves the contact enquiry endpoint.
package main

import (
	"fmt"
	"os"

	"github.com/dmitrymomot/enquiry"
)

func main() {
	cfg, err := enquiry.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "enquiryd: %v\n", err)
		os.Exit(1)
	}

	srv, err := enquiry.NewServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "enquiryd: %v\n", err)
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		srv.Logger().Error("server error", "error", err)
		os.Exit(1)
	}
}
