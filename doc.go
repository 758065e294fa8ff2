// Package enquiry wires the contact enquiry service together.
//
// A visitor posts name, email and message to /api/submit-enquiry. The server
// answers at once and emails the site owner in the background; delivery
// failures are appended to a local diagnostic log and never retried.
//
// Configuration comes from the environment, optionally seeded from a .env file:
//
//	cfg, err := enquiry.LoadConfig()
//	if err != nil {
//	    return err
//	}
//
//	srv, err := enquiry.NewServer(cfg)
//	if err != nil {
//	    return err
//	}
//
//	return srv.Run()
//
// Run blocks until SIGINT or SIGTERM. On shutdown the HTTP server drains
// first, then in-flight notifications get the rest of the shutdown timeout
// to finish.
package enquiry
