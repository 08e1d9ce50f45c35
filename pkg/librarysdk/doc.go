/*
Package librarysdk provides a Go client for the library catalog HTTP API.

The package is organised around two types:

  - Client: public operations (register, login, browse books, health probes)
  - Session: operations that need a bearer token (add, update, delete books)

Log in to obtain a Session:

	client := librarysdk.NewClient("http://localhost:5000")

	if _, err := client.Register(ctx, "alice", "s3cr3t"); err != nil {
		// *librarysdk.APIError carries the status code and server message
	}

	session, err := client.Authenticate(ctx, "alice", "s3cr3t")
	id, err := session.AddBook(ctx, librarysdk.BookInput{Title: librarysdk.String("Dune")})

Session tokens last eight hours and cannot be refreshed; log in again once the
server starts answering 401.

The request and response types in this package are the same ones the server
encodes, so they double as the wire contract.
*/
package librarysdk
