// Package cli provides the interactive EduRoot storefront client.
//
// It wires configuration, the local store, the HTTP client and the
// session/cart services, then runs a REPL for browsing books, managing the
// cart and checking out. Typical flow: restore the saved session, list
// books, add a few to the cart, log in and check out.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command list.
package cli
